package models

import "time"

// AccountInvite holds a pending registration invitation. Tokens have no
// expiry and are not consumed on confirmation.
type AccountInvite struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Account     string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"account"`
	InviteToken string    `gorm:"type:varchar(10);not null" json:"invite_token"`
	CreatedAt   time.Time `json:"created_at"`
}
