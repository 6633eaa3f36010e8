package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/repository"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrInvalidDeadline      = errors.New("invalid deadline")
	ErrInvalidEstimatedTime = errors.New("estimated_time must be a non-negative integer")
	ErrUnknownUsers         = errors.New("one or more user ids do not exist")
)

// TaskService provides business logic for the flat task tracker.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// TaskInput holds the mutable task fields.
type TaskInput struct {
	Title         string
	Description   string
	AuthorID      *uint64
	AssigneeID    *uint64
	ObserverIDs   []uint64
	ExecutorIDs   []uint64
	Deadline      time.Time
	Status        models.TaskStatus
	EstimatedTime uint
}

func (s *TaskService) resolveUsers(ids []uint64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	count, err := s.taskRepo.CountUsersByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check users: %w", err)
	}
	if int(count) != len(ids) {
		return nil, ErrUnknownUsers
	}

	users := make([]models.User, len(ids))
	for i, id := range ids {
		users[i] = models.User{ID: id}
	}
	return users, nil
}

func (s *TaskService) checkUserRef(id *uint64) error {
	if id == nil {
		return nil
	}
	if _, err := s.userRepo.FindByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownUsers
		}
		return fmt.Errorf("failed to check user: %w", err)
	}
	return nil
}

// CreateTask validates references, persists the task and its user
// links, and returns it fully loaded.
func (s *TaskService) CreateTask(input TaskInput) (*models.Task, error) {
	if input.Status == "" {
		input.Status = models.TaskStatusNew
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	if err := s.checkUserRef(input.AuthorID); err != nil {
		return nil, err
	}
	if err := s.checkUserRef(input.AssigneeID); err != nil {
		return nil, err
	}
	observers, err := s.resolveUsers(input.ObserverIDs)
	if err != nil {
		return nil, err
	}
	executors, err := s.resolveUsers(input.ExecutorIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:         input.Title,
		Description:   input.Description,
		AuthorID:      input.AuthorID,
		AssigneeID:    input.AssigneeID,
		Deadline:      input.Deadline,
		Status:        input.Status,
		EstimatedTime: input.EstimatedTime,
		Observers:     observers,
		Executors:     executors,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID)
}

// ListTasks returns a page of tasks with the total count.
func (s *TaskService) ListTasks(offset, limit int) ([]models.Task, int64, error) {
	return s.taskRepo.List(offset, limit)
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTask replaces all mutable fields of a task.
func (s *TaskService) UpdateTask(id uint64, input TaskInput) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = task.Status
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	if err := s.checkUserRef(input.AuthorID); err != nil {
		return nil, err
	}
	if err := s.checkUserRef(input.AssigneeID); err != nil {
		return nil, err
	}
	observers, err := s.resolveUsers(input.ObserverIDs)
	if err != nil {
		return nil, err
	}
	executors, err := s.resolveUsers(input.ExecutorIDs)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.AuthorID = input.AuthorID
	task.AssigneeID = input.AssigneeID
	task.Deadline = input.Deadline
	task.Status = input.Status
	task.EstimatedTime = input.EstimatedTime

	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if err := s.taskRepo.ReplaceObservers(task, observers); err != nil {
		return nil, fmt.Errorf("failed to update observers: %w", err)
	}
	if err := s.taskRepo.ReplaceExecutors(task, executors); err != nil {
		return nil, fmt.Errorf("failed to update executors: %w", err)
	}

	return s.taskRepo.FindByID(task.ID)
}

// PatchTask applies only the provided fields to a task. The fields map
// mirrors the raw request body so absent keys stay untouched.
func (s *TaskService) PatchTask(id uint64, fields map[string]interface{}) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if v, ok := fields["title"].(string); ok {
		task.Title = v
	}
	if v, ok := fields["description"].(string); ok {
		task.Description = v
	}
	if v, ok := fields["status"].(string); ok {
		status := models.TaskStatus(v)
		if !models.ValidTaskStatus(status) {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = status
	}
	if v, ok := fields["deadline"].(string); ok {
		deadline, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, ErrInvalidDeadline
		}
		task.Deadline = deadline
	}
	if raw, present := fields["estimated_time"]; present {
		v, ok := raw.(float64)
		if !ok || v < 0 || v != math.Trunc(v) {
			return nil, ErrInvalidEstimatedTime
		}
		task.EstimatedTime = uint(v)
	}
	if raw, present := fields["assignee"]; present {
		id, err := toOptionalUserID(raw)
		if err != nil {
			return nil, err
		}
		if err := s.checkUserRef(id); err != nil {
			return nil, err
		}
		task.AssigneeID = id
	}
	if raw, present := fields["author"]; present {
		id, err := toOptionalUserID(raw)
		if err != nil {
			return nil, err
		}
		if err := s.checkUserRef(id); err != nil {
			return nil, err
		}
		task.AuthorID = id
	}

	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if raw, present := fields["observers"]; present {
		users, err := s.resolveUserList(raw)
		if err != nil {
			return nil, err
		}
		if err := s.taskRepo.ReplaceObservers(task, users); err != nil {
			return nil, fmt.Errorf("failed to update observers: %w", err)
		}
	}
	if raw, present := fields["executors"]; present {
		users, err := s.resolveUserList(raw)
		if err != nil {
			return nil, err
		}
		if err := s.taskRepo.ReplaceExecutors(task, users); err != nil {
			return nil, fmt.Errorf("failed to update executors: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID)
}

// DeleteTask removes a task and its user links.
func (s *TaskService) DeleteTask(id uint64) error {
	if _, err := s.GetTask(id); err != nil {
		return err
	}
	return s.taskRepo.Delete(id)
}

func toOptionalUserID(raw interface{}) (*uint64, error) {
	if raw == nil {
		return nil, nil
	}
	v, ok := raw.(float64)
	if !ok || v < 0 || v != math.Trunc(v) {
		return nil, ErrUnknownUsers
	}
	id := uint64(v)
	return &id, nil
}

func (s *TaskService) resolveUserList(raw interface{}) ([]models.User, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, ErrUnknownUsers
	}
	ids := make([]uint64, 0, len(list))
	for _, item := range list {
		v, ok := item.(float64)
		if !ok || v < 0 || v != math.Trunc(v) {
			return nil, ErrUnknownUsers
		}
		ids = append(ids, uint64(v))
	}
	return s.resolveUsers(ids)
}
