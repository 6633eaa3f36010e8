package models

import "time"

// Employee links a User into the org chart. One profile per user; the
// manager chain is kept as plain IDs.
type Employee struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	UserID       uint64    `gorm:"uniqueIndex;not null" json:"user"`
	DepartmentID uint64    `gorm:"not null;index" json:"department"`
	PositionID   uint64    `gorm:"not null;index" json:"position"`
	ManagerID    *uint64   `gorm:"index" json:"manager"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	User       User       `gorm:"foreignKey:UserID" json:"user_details,omitempty"`
	Department Department `gorm:"foreignKey:DepartmentID" json:"department_details,omitempty"`
	Position   Position   `gorm:"foreignKey:PositionID" json:"position_details,omitempty"`
	Manager    *Employee  `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"manager_details,omitempty"`
}
