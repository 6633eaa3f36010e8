package repository

import (
	"github.com/emplatform/employee-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByAccount finds a user by email account
	FindByAccount(account string) (*models.User, error)

	// Save persists changes to an existing user
	Save(user *models.User) error
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)

	// FindByName finds a company by its unique name
	FindByName(name string) (*models.Company, error)

	// CreateWithAdmin creates a company and its admin user within a
	// single transaction.
	CreateWithAdmin(company *models.Company, admin *models.User) error
}

// InviteRepository defines the interface for registration invite data access
type InviteRepository interface {
	// Create persists a new invite
	Create(invite *models.AccountInvite) error

	// FindByAccount finds an invite by email account
	FindByAccount(account string) (*models.AccountInvite, error)

	// FindByAccountAndToken finds an invite matching both fields exactly
	FindByAccountAndToken(account, token string) (*models.AccountInvite, error)
}

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	Create(dept *models.Department) error
	FindByID(id uint64) (*models.Department, error)
	List(offset, limit int) ([]models.Department, int64, error)
	Save(dept *models.Department) error
	Delete(id uint64) error
}

// PositionRepository defines the interface for position data access
type PositionRepository interface {
	Create(pos *models.Position) error
	FindByID(id uint64) (*models.Position, error)
	List(offset, limit int) ([]models.Position, int64, error)
	Save(pos *models.Position) error
	Delete(id uint64) error
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	Create(emp *models.Employee) error
	FindByID(id uint64) (*models.Employee, error)
	FindByUserID(userID uint64) (*models.Employee, error)
	List(offset, limit int) ([]models.Employee, int64, error)
	Save(emp *models.Employee) error
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task together with its observer/executor links
	Create(task *models.Task) error

	// FindByID finds a task by ID with relations preloaded
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks with pagination
	List(offset, limit int) ([]models.Task, int64, error)

	// Save persists changes to an existing task
	Save(task *models.Task) error

	// ReplaceObservers replaces the observer set of a task
	ReplaceObservers(task *models.Task, users []models.User) error

	// ReplaceExecutors replaces the executor set of a task
	ReplaceExecutors(task *models.Task, users []models.User) error

	// Delete removes a task and its user links
	Delete(id uint64) error

	// CountUsersByIDs counts how many of the given user IDs exist
	CountUsersByIDs(userIDs []uint64) (int64, error)
}
