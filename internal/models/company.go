package models

import "time"

type Company struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	CompanyName string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Employees   []User       `gorm:"foreignKey:CompanyID" json:"employees,omitempty"`
	Departments []Department `gorm:"foreignKey:CompanyID" json:"departments,omitempty"`
}
