package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emplatform/employee-management-api/internal/dto"
	apierrors "github.com/emplatform/employee-management-api/internal/errors"
	"github.com/emplatform/employee-management-api/internal/services"
	"github.com/emplatform/employee-management-api/internal/utils"
)

// DepartmentHandler exposes department CRUD for administrators.
type DepartmentHandler struct {
	orgService *services.OrgChartService
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(orgService *services.OrgChartService) *DepartmentHandler {
	return &DepartmentHandler{
		orgService: orgService,
	}
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

type departmentRequest struct {
	Name      string  `json:"name" binding:"required"`
	Manager   *uint64 `json:"manager"`
	Parent    *uint64 `json:"parent"`
	CompanyID uint64  `json:"company" binding:"required"`
}

func (r departmentRequest) toInput() services.DepartmentInput {
	return services.DepartmentInput{
		Name:      r.Name,
		ManagerID: r.Manager,
		ParentID:  r.Parent,
		CompanyID: r.CompanyID,
	}
}

// List returns all departments, paginated.
func (h *DepartmentHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	depts, total, err := h.orgService.ListDepartments(params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch departments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(depts, dto.ToDepartmentDTO, params, total))
}

// Create creates a department.
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	dept, err := h.orgService.CreateDepartment(req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepartmentDTO(*dept))
}

// Get retrieves a department by ID.
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	dept, err := h.orgService.GetDepartment(id)
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*dept))
}

// Update replaces a department.
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	dept, err := h.orgService.UpdateDepartment(id, req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*dept))
}

// Patch partial-updates a department.
func (h *DepartmentHandler) Patch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	dept, err := h.orgService.GetDepartment(id)
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	// Start from current values so absent keys stay untouched.
	req := departmentRequest{
		Name:      dept.Name,
		Manager:   dept.ManagerID,
		Parent:    dept.ParentID,
		CompanyID: dept.CompanyID,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.orgService.UpdateDepartment(id, req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentDTO(*updated))
}

// Delete removes a department.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orgService.DeleteDepartment(id); err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

func respondOrgChartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDepartmentNotFound),
		errors.Is(err, services.ErrPositionNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrBadReference):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmployeeExists):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
