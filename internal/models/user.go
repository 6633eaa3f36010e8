package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	FirstName    string    `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150);not null" json:"last_name"`
	Account      string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"account"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CompanyID    uint64    `gorm:"not null" json:"company"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	IsActive     bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company_details,omitempty"`
}
