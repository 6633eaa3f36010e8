package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emplatform/employee-management-api/internal/database"
	"github.com/emplatform/employee-management-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task together with its observer/executor links
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with relations preloaded
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("Author").
		Preload("Assignee").
		Preload("Observers").
		Preload("Executors").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with pagination
func (r *GormTaskRepository) List(offset, limit int) ([]models.Task, int64, error) {
	var tasks []models.Task

	var total int64
	if err := r.db.Model(&models.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.
		Preload("Author").
		Preload("Assignee").
		Preload("Observers").
		Preload("Executors").
		Scopes(database.Paginate(offset, limit)).
		Order("tasks.created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Save persists changes to an existing task
func (r *GormTaskRepository) Save(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// ReplaceObservers replaces the observer set of a task
func (r *GormTaskRepository) ReplaceObservers(task *models.Task, users []models.User) error {
	return r.db.Model(task).Association("Observers").Replace(users)
}

// ReplaceExecutors replaces the executor set of a task
func (r *GormTaskRepository) ReplaceExecutors(task *models.Task, users []models.User) error {
	return r.db.Model(task).Association("Executors").Replace(users)
}

// Delete removes a task and its user links
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		task := models.Task{ID: id}
		if err := tx.Model(&task).Association("Observers").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&task).Association("Executors").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// CountUsersByIDs counts how many of the given user IDs exist
func (r *GormTaskRepository) CountUsersByIDs(userIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("id IN ?", userIDs).
		Count(&count).Error
	return count, err
}
