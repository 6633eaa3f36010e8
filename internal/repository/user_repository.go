package repository

import (
	"github.com/emplatform/employee-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Company").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAccount finds a user by email account
func (r *GormUserRepository) FindByAccount(account string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Company").Where("account = ?", account).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Save persists changes to an existing user
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}
