package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emplatform/employee-management-api/internal/dto"
	apierrors "github.com/emplatform/employee-management-api/internal/errors"
	"github.com/emplatform/employee-management-api/internal/middleware"
	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/services"
	"github.com/emplatform/employee-management-api/internal/utils"
)

// TaskHandler exposes the flat task tracker to authenticated users.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type taskRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	Author        *uint64   `json:"author"`
	Assignee      *uint64   `json:"assignee"`
	Observers     []uint64  `json:"observers"`
	Executors     []uint64  `json:"executors"`
	Deadline      time.Time `json:"deadline" binding:"required"`
	Status        string    `json:"status"`
	EstimatedTime uint      `json:"estimated_time"`
}

func (r taskRequest) toInput() services.TaskInput {
	return services.TaskInput{
		Title:         r.Title,
		Description:   r.Description,
		AuthorID:      r.Author,
		AssigneeID:    r.Assignee,
		ObserverIDs:   r.Observers,
		ExecutorIDs:   r.Executors,
		Deadline:      r.Deadline,
		Status:        models.TaskStatus(r.Status),
		EstimatedTime: r.EstimatedTime,
	}
}

// List returns all tasks, paginated.
func (h *TaskHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(tasks, dto.ToTaskDTO, params, total))
}

// Create creates a task. The author defaults to the current user when
// the payload leaves it out.
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	input := req.toInput()
	if input.AuthorID == nil {
		if userID, exists := middleware.GetUserID(c); exists {
			input.AuthorID = &userID
		}
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// Get retrieves a task by ID.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Update replaces all mutable fields of a task.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	task, err := h.taskService.UpdateTask(id, req.toInput())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Patch applies only the provided fields to a task.
func (h *TaskHandler) Patch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.PatchTask(id, fields)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Delete removes a task.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidDeadline),
		errors.Is(err, services.ErrInvalidEstimatedTime),
		errors.Is(err, services.ErrUnknownUsers):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
