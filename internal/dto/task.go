package dto

import (
	"time"

	"github.com/emplatform/employee-management-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID              uint64            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Author          *uint64           `json:"author"`
	Assignee        *uint64           `json:"assignee"`
	Observers       []uint64          `json:"observers"`
	Executors       []uint64          `json:"executors"`
	Deadline        time.Time         `json:"deadline"`
	Status          models.TaskStatus `json:"status"`
	EstimatedTime   uint              `json:"estimated_time"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	AuthorDetails   *UserDTO          `json:"author_details,omitempty"`
	AssigneeDetails *UserDTO          `json:"assignee_details,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Author:        task.AuthorID,
		Assignee:      task.AssigneeID,
		Observers:     userIDs(task.Observers),
		Executors:     userIDs(task.Executors),
		Deadline:      task.Deadline,
		Status:        task.Status,
		EstimatedTime: task.EstimatedTime,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}

	// Include author/assignee if preloaded
	if task.Author != nil && task.Author.ID != 0 {
		author := ToUserDTO(*task.Author)
		dto.AuthorDetails = &author
	}
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.AssigneeDetails = &assignee
	}

	return dto
}

func userIDs(users []models.User) []uint64 {
	ids := make([]uint64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
