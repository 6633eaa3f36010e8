package dto

import (
	"github.com/emplatform/employee-management-api/internal/models"
)

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID          uint64 `json:"id"`
	CompanyName string `json:"company_name"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64      `json:"id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Account        string      `json:"account"`
	Company        uint64      `json:"company"`
	CompanyDetails *CompanyDTO `json:"company_details,omitempty"`
	IsStaff        bool        `json:"is_staff"`
	IsActive       bool        `json:"is_active"`
}

// ToCompanyDTO converts a Company model to CompanyDTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:          company.ID,
		CompanyName: company.CompanyName,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Account:   user.Account,
		Company:   user.CompanyID,
		IsStaff:   user.IsStaff,
		IsActive:  user.IsActive,
	}

	// Include company if preloaded
	if user.Company.ID != 0 {
		company := ToCompanyDTO(user.Company)
		dto.CompanyDetails = &company
	}

	return dto
}
