package dto

import (
	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/utils"
)

// DepartmentDTO represents a department in API responses
type DepartmentDTO struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Manager *uint64 `json:"manager"`
	Parent  *uint64 `json:"parent"`
	Company uint64  `json:"company"`
}

// PositionDTO represents a position in API responses
type PositionDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Department uint64 `json:"department"`
}

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID          uint64   `json:"id"`
	User        uint64   `json:"user"`
	Department  uint64   `json:"department"`
	Position    uint64   `json:"position"`
	Manager     *uint64  `json:"manager"`
	UserDetails *UserDTO `json:"user_details,omitempty"`
}

// ToDepartmentDTO converts a Department model to DepartmentDTO
func ToDepartmentDTO(dept models.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:      dept.ID,
		Name:    dept.Name,
		Manager: dept.ManagerID,
		Parent:  dept.ParentID,
		Company: dept.CompanyID,
	}
}

// ToPositionDTO converts a Position model to PositionDTO
func ToPositionDTO(pos models.Position) PositionDTO {
	return PositionDTO{
		ID:         pos.ID,
		Name:       pos.Name,
		Department: pos.DepartmentID,
	}
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(emp models.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:         emp.ID,
		User:       emp.UserID,
		Department: emp.DepartmentID,
		Position:   emp.PositionID,
		Manager:    emp.ManagerID,
	}

	// Include user if preloaded
	if emp.User.ID != 0 {
		user := ToUserDTO(emp.User)
		dto.UserDetails = &user
	}

	return dto
}

// ListResponse wraps a page of results with pagination metadata
type ListResponse[T any] struct {
	Results    []T                      `json:"results"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToListResponse builds a paginated list response
func ToListResponse[M any, T any](items []M, convert func(M) T, params utils.PaginationParams, total int64) ListResponse[T] {
	results := make([]T, len(items))
	for i, item := range items {
		results[i] = convert(item)
	}
	return ListResponse[T]{
		Results: results,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
