package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emplatform/employee-management-api/internal/dto"
	apierrors "github.com/emplatform/employee-management-api/internal/errors"
	"github.com/emplatform/employee-management-api/internal/services"
	"github.com/emplatform/employee-management-api/internal/utils"
)

// EmployeeHandler exposes employee CRUD for administrators.
type EmployeeHandler struct {
	orgService *services.OrgChartService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(orgService *services.OrgChartService) *EmployeeHandler {
	return &EmployeeHandler{
		orgService: orgService,
	}
}

type employeeRequest struct {
	UserID       uint64  `json:"user" binding:"required"`
	DepartmentID uint64  `json:"department" binding:"required"`
	PositionID   uint64  `json:"position" binding:"required"`
	Manager      *uint64 `json:"manager"`
}

func (r employeeRequest) toInput() services.EmployeeInput {
	return services.EmployeeInput{
		UserID:       r.UserID,
		DepartmentID: r.DepartmentID,
		PositionID:   r.PositionID,
		ManagerID:    r.Manager,
	}
}

// List returns all employees, paginated.
func (h *EmployeeHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	employees, total, err := h.orgService.ListEmployees(params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch employees")
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(employees, dto.ToEmployeeDTO, params, total))
}

// Create links a user into the org chart.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	emp, err := h.orgService.CreateEmployee(req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*emp))
}

// Get retrieves an employee by ID.
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	emp, err := h.orgService.GetEmployee(id)
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*emp))
}

// Update replaces an employee profile.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	emp, err := h.orgService.UpdateEmployee(id, req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*emp))
}

// Patch partial-updates an employee profile.
func (h *EmployeeHandler) Patch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	emp, err := h.orgService.GetEmployee(id)
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	req := employeeRequest{
		UserID:       emp.UserID,
		DepartmentID: emp.DepartmentID,
		PositionID:   emp.PositionID,
		Manager:      emp.ManagerID,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.orgService.UpdateEmployee(id, req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*updated))
}

// Delete removes an employee profile.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orgService.DeleteEmployee(id); err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
