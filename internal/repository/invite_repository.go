package repository

import (
	"github.com/emplatform/employee-management-api/internal/models"
	"gorm.io/gorm"
)

// GormInviteRepository is a GORM implementation of InviteRepository
type GormInviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &GormInviteRepository{db: db}
}

// Create persists a new invite
func (r *GormInviteRepository) Create(invite *models.AccountInvite) error {
	return r.db.Create(invite).Error
}

// FindByAccount finds an invite by email account
func (r *GormInviteRepository) FindByAccount(account string) (*models.AccountInvite, error) {
	var invite models.AccountInvite
	if err := r.db.Where("account = ?", account).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindByAccountAndToken finds an invite matching both fields exactly
func (r *GormInviteRepository) FindByAccountAndToken(account, token string) (*models.AccountInvite, error) {
	var invite models.AccountInvite
	if err := r.db.Where("account = ? AND invite_token = ?", account, token).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}
