package models

import "time"

// Department is a node in the company org tree. Parent and manager are
// referenced by ID only; nothing prevents a parent cycle today.
type Department struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	ManagerID *uint64   `gorm:"uniqueIndex" json:"manager"`
	ParentID  *uint64   `gorm:"index" json:"parent"`
	CompanyID uint64    `gorm:"not null;index" json:"company"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Manager  *User        `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"manager_details,omitempty"`
	Company  Company      `gorm:"foreignKey:CompanyID" json:"company_details,omitempty"`
	Children []Department `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
