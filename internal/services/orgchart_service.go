package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/repository"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrPositionNotFound   = errors.New("position not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrEmployeeExists     = errors.New("user already has an employee profile")
	ErrBadReference       = errors.New("referenced record does not exist")
)

// OrgChartService provides CRUD over departments, positions and
// employees with referential checks up front.
type OrgChartService struct {
	deptRepo    repository.DepartmentRepository
	posRepo     repository.PositionRepository
	empRepo     repository.EmployeeRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewOrgChartService creates a new OrgChartService.
func NewOrgChartService(
	deptRepo repository.DepartmentRepository,
	posRepo repository.PositionRepository,
	empRepo repository.EmployeeRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
) *OrgChartService {
	return &OrgChartService{
		deptRepo:    deptRepo,
		posRepo:     posRepo,
		empRepo:     empRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

// DepartmentInput holds the mutable department fields.
type DepartmentInput struct {
	Name      string
	ManagerID *uint64
	ParentID  *uint64
	CompanyID uint64
}

func (s *OrgChartService) checkDepartmentRefs(input DepartmentInput) error {
	if _, err := s.companyRepo.FindByID(input.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("failed to check company: %w", err)
	}
	if input.ManagerID != nil {
		if _, err := s.userRepo.FindByID(*input.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBadReference
			}
			return fmt.Errorf("failed to check manager: %w", err)
		}
	}
	if input.ParentID != nil {
		if _, err := s.deptRepo.FindByID(*input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBadReference
			}
			return fmt.Errorf("failed to check parent department: %w", err)
		}
	}
	return nil
}

// CreateDepartment creates a department. Parent cycles are not checked;
// the hierarchy is stored as plain IDs.
func (s *OrgChartService) CreateDepartment(input DepartmentInput) (*models.Department, error) {
	if err := s.checkDepartmentRefs(input); err != nil {
		return nil, err
	}

	dept := &models.Department{
		Name:      input.Name,
		ManagerID: input.ManagerID,
		ParentID:  input.ParentID,
		CompanyID: input.CompanyID,
	}
	if err := s.deptRepo.Create(dept); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return dept, nil
}

// ListDepartments returns a page of departments with the total count.
func (s *OrgChartService) ListDepartments(offset, limit int) ([]models.Department, int64, error) {
	return s.deptRepo.List(offset, limit)
}

// GetDepartment retrieves a department by ID.
func (s *OrgChartService) GetDepartment(id uint64) (*models.Department, error) {
	dept, err := s.deptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return dept, nil
}

// UpdateDepartment applies input to an existing department. Partial
// updates pass the current values for untouched fields.
func (s *OrgChartService) UpdateDepartment(id uint64, input DepartmentInput) (*models.Department, error) {
	dept, err := s.GetDepartment(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkDepartmentRefs(input); err != nil {
		return nil, err
	}

	dept.Name = input.Name
	dept.ManagerID = input.ManagerID
	dept.ParentID = input.ParentID
	dept.CompanyID = input.CompanyID
	if err := s.deptRepo.Save(dept); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return dept, nil
}

// DeleteDepartment removes a department.
func (s *OrgChartService) DeleteDepartment(id uint64) error {
	if _, err := s.GetDepartment(id); err != nil {
		return err
	}
	return s.deptRepo.Delete(id)
}

// PositionInput holds the mutable position fields.
type PositionInput struct {
	Name         string
	DepartmentID uint64
}

func (s *OrgChartService) checkPositionRefs(input PositionInput) error {
	if _, err := s.deptRepo.FindByID(input.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadReference
		}
		return fmt.Errorf("failed to check department: %w", err)
	}
	return nil
}

// CreatePosition creates a position inside an existing department.
func (s *OrgChartService) CreatePosition(input PositionInput) (*models.Position, error) {
	if err := s.checkPositionRefs(input); err != nil {
		return nil, err
	}

	pos := &models.Position{
		Name:         input.Name,
		DepartmentID: input.DepartmentID,
	}
	if err := s.posRepo.Create(pos); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	return pos, nil
}

// ListPositions returns a page of positions with the total count.
func (s *OrgChartService) ListPositions(offset, limit int) ([]models.Position, int64, error) {
	return s.posRepo.List(offset, limit)
}

// GetPosition retrieves a position by ID.
func (s *OrgChartService) GetPosition(id uint64) (*models.Position, error) {
	pos, err := s.posRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, fmt.Errorf("failed to find position: %w", err)
	}
	return pos, nil
}

// UpdatePosition applies input to an existing position.
func (s *OrgChartService) UpdatePosition(id uint64, input PositionInput) (*models.Position, error) {
	pos, err := s.GetPosition(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkPositionRefs(input); err != nil {
		return nil, err
	}

	pos.Name = input.Name
	pos.DepartmentID = input.DepartmentID
	if err := s.posRepo.Save(pos); err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}
	return pos, nil
}

// DeletePosition removes a position.
func (s *OrgChartService) DeletePosition(id uint64) error {
	if _, err := s.GetPosition(id); err != nil {
		return err
	}
	return s.posRepo.Delete(id)
}

// EmployeeInput holds the mutable employee fields.
type EmployeeInput struct {
	UserID       uint64
	DepartmentID uint64
	PositionID   uint64
	ManagerID    *uint64
}

func (s *OrgChartService) checkEmployeeRefs(input EmployeeInput) error {
	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadReference
		}
		return fmt.Errorf("failed to check user: %w", err)
	}
	if _, err := s.deptRepo.FindByID(input.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadReference
		}
		return fmt.Errorf("failed to check department: %w", err)
	}
	if _, err := s.posRepo.FindByID(input.PositionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadReference
		}
		return fmt.Errorf("failed to check position: %w", err)
	}
	if input.ManagerID != nil {
		if _, err := s.empRepo.FindByID(*input.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBadReference
			}
			return fmt.Errorf("failed to check manager: %w", err)
		}
	}
	return nil
}

// CreateEmployee links a user into the org chart. One profile per user.
func (s *OrgChartService) CreateEmployee(input EmployeeInput) (*models.Employee, error) {
	if err := s.checkEmployeeRefs(input); err != nil {
		return nil, err
	}

	if _, err := s.empRepo.FindByUserID(input.UserID); err == nil {
		return nil, ErrEmployeeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check employee: %w", err)
	}

	emp := &models.Employee{
		UserID:       input.UserID,
		DepartmentID: input.DepartmentID,
		PositionID:   input.PositionID,
		ManagerID:    input.ManagerID,
	}
	if err := s.empRepo.Create(emp); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return emp, nil
}

// ListEmployees returns a page of employees with the total count.
func (s *OrgChartService) ListEmployees(offset, limit int) ([]models.Employee, int64, error) {
	return s.empRepo.List(offset, limit)
}

// GetEmployee retrieves an employee by ID.
func (s *OrgChartService) GetEmployee(id uint64) (*models.Employee, error) {
	emp, err := s.empRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return emp, nil
}

// UpdateEmployee applies input to an existing employee.
func (s *OrgChartService) UpdateEmployee(id uint64, input EmployeeInput) (*models.Employee, error) {
	emp, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmployeeRefs(input); err != nil {
		return nil, err
	}

	emp.UserID = input.UserID
	emp.DepartmentID = input.DepartmentID
	emp.PositionID = input.PositionID
	emp.ManagerID = input.ManagerID
	if err := s.empRepo.Save(emp); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return emp, nil
}

// DeleteEmployee removes an employee profile.
func (s *OrgChartService) DeleteEmployee(id uint64) error {
	if _, err := s.GetEmployee(id); err != nil {
		return err
	}
	return s.empRepo.Delete(id)
}
