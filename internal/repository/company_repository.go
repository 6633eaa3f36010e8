package repository

import (
	"errors"
	"fmt"

	"github.com/emplatform/employee-management-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateCompany is returned when creating a company fails inside the signup transaction.
	ErrCreateCompany = errors.New("company repository: create company failed")
	// ErrCreateAdmin is returned when creating the admin user fails inside the signup transaction.
	ErrCreateAdmin = errors.New("company repository: create admin failed")
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByName finds a company by its unique name
func (r *GormCompanyRepository) FindByName(name string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("company_name = ?", name).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// CreateWithAdmin creates the company and its first admin user atomically.
func (r *GormCompanyRepository) CreateWithAdmin(company *models.Company, admin *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCompany, err)
		}

		admin.CompanyID = company.ID

		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAdmin, err)
		}

		return nil
	})
}
