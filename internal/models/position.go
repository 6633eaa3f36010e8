package models

import "time"

type Position struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	DepartmentID uint64    `gorm:"not null;index" json:"department"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID" json:"department_details,omitempty"`
}
