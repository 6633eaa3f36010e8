package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emplatform/employee-management-api/internal/dto"
	apierrors "github.com/emplatform/employee-management-api/internal/errors"
	"github.com/emplatform/employee-management-api/internal/services"
	"github.com/emplatform/employee-management-api/internal/utils"
)

// PositionHandler exposes position CRUD for administrators.
type PositionHandler struct {
	orgService *services.OrgChartService
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(orgService *services.OrgChartService) *PositionHandler {
	return &PositionHandler{
		orgService: orgService,
	}
}

type positionRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID uint64 `json:"department" binding:"required"`
}

func (r positionRequest) toInput() services.PositionInput {
	return services.PositionInput{
		Name:         r.Name,
		DepartmentID: r.DepartmentID,
	}
}

// List returns all positions, paginated.
func (h *PositionHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	positions, total, err := h.orgService.ListPositions(params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch positions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(positions, dto.ToPositionDTO, params, total))
}

// Create creates a position.
func (h *PositionHandler) Create(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	pos, err := h.orgService.CreatePosition(req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPositionDTO(*pos))
}

// Get retrieves a position by ID.
func (h *PositionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	pos, err := h.orgService.GetPosition(id)
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPositionDTO(*pos))
}

// Update replaces a position.
func (h *PositionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	pos, err := h.orgService.UpdatePosition(id, req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPositionDTO(*pos))
}

// Patch partial-updates a position.
func (h *PositionHandler) Patch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	pos, err := h.orgService.GetPosition(id)
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	req := positionRequest{
		Name:         pos.Name,
		DepartmentID: pos.DepartmentID,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.orgService.UpdatePosition(id, req.toInput())
	if err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPositionDTO(*updated))
}

// Delete removes a position.
func (h *PositionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orgService.DeletePosition(id); err != nil {
		respondOrgChartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position deleted successfully"})
}
