package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emplatform/employee-management-api/internal/dto"
	apierrors "github.com/emplatform/employee-management-api/internal/errors"
	"github.com/emplatform/employee-management-api/internal/middleware"
	"github.com/emplatform/employee-management-api/internal/services"
)

// AuthHandler coordinates token issuance.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user and issues the bearer token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Account  string `json:"account" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	pair, err := h.authService.Login(req.Account, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	type RefreshRequest struct {
		Refresh string `json:"refresh" binding:"required"`
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	pair, err := h.authService.Refresh(req.Refresh)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			apierrors.Unauthorized(c, "Invalid or expired token")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
