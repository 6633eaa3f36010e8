package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emplatform/employee-management-api/internal/database"
	"github.com/emplatform/employee-management-api/internal/models"
)

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

func (r *GormDepartmentRepository) Create(dept *models.Department) error {
	return r.db.Create(dept).Error
}

func (r *GormDepartmentRepository) FindByID(id uint64) (*models.Department, error) {
	var dept models.Department
	if err := r.db.First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *GormDepartmentRepository) List(offset, limit int) ([]models.Department, int64, error) {
	var depts []models.Department

	var total int64
	if err := r.db.Model(&models.Department{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Scopes(database.Paginate(offset, limit)).Order("id").Find(&depts).Error; err != nil {
		return nil, 0, err
	}
	return depts, total, nil
}

func (r *GormDepartmentRepository) Save(dept *models.Department) error {
	return r.db.Save(dept).Error
}

func (r *GormDepartmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Department{}, id).Error
}

// GormPositionRepository is a GORM implementation of PositionRepository
type GormPositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a new PositionRepository
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &GormPositionRepository{db: db}
}

func (r *GormPositionRepository) Create(pos *models.Position) error {
	return r.db.Create(pos).Error
}

func (r *GormPositionRepository) FindByID(id uint64) (*models.Position, error) {
	var pos models.Position
	if err := r.db.First(&pos, id).Error; err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *GormPositionRepository) List(offset, limit int) ([]models.Position, int64, error) {
	var positions []models.Position

	var total int64
	if err := r.db.Model(&models.Position{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Scopes(database.Paginate(offset, limit)).Order("id").Find(&positions).Error; err != nil {
		return nil, 0, err
	}
	return positions, total, nil
}

func (r *GormPositionRepository) Save(pos *models.Position) error {
	return r.db.Save(pos).Error
}

func (r *GormPositionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Position{}, id).Error
}

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) Create(emp *models.Employee) error {
	return r.db.Create(emp).Error
}

func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var emp models.Employee
	if err := r.db.Preload("User").First(&emp, id).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *GormEmployeeRepository) FindByUserID(userID uint64) (*models.Employee, error) {
	var emp models.Employee
	if err := r.db.Where("user_id = ?", userID).First(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *GormEmployeeRepository) List(offset, limit int) ([]models.Employee, int64, error) {
	var employees []models.Employee

	var total int64
	if err := r.db.Model(&models.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("User").Scopes(database.Paginate(offset, limit)).Order("id").Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *GormEmployeeRepository) Save(emp *models.Employee) error {
	return r.db.Omit(clause.Associations).Save(emp).Error
}

func (r *GormEmployeeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Employee{}, id).Error
}
