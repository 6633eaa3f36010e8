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

// RegistrationHandler exposes the invite/confirm/activate onboarding
// workflow.
type RegistrationHandler struct {
	regService *services.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(regService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		regService: regService,
	}
}

// CheckAccount verifies the email is free, issues an invite token and
// redirects the caller to sign-up.
func (h *RegistrationHandler) CheckAccount(c *gin.Context) {
	account := c.Query("account")

	if _, err := h.regService.CheckAccount(account); err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/auth/api/v1/sign-up")
}

// SignUp confirms the invite token and redirects to sign-up-complete.
func (h *RegistrationHandler) SignUp(c *gin.Context) {
	type SignUpRequest struct {
		Account     string `json:"account" binding:"required"`
		InviteToken string `json:"invite_token" binding:"required"`
	}

	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	ok, err := h.regService.ConfirmToken(req.Account, req.InviteToken)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	if !ok {
		apierrors.BadRequest(c, services.ErrInvalidInviteToken.Error())
		return
	}

	c.Redirect(http.StatusFound, "/auth/api/v1/sign-up-complete")
}

// SignUpComplete creates the company and its administrator.
func (h *RegistrationHandler) SignUpComplete(c *gin.Context) {
	type SignUpCompleteRequest struct {
		CompanyName string `json:"company_name"`
		FirstName   string `json:"first_name" binding:"required"`
		LastName    string `json:"last_name" binding:"required"`
		Account     string `json:"account" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=8"`
	}

	var req SignUpCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	user, err := h.regService.CreateCompanyAndAdmin(services.CreateAdminInput{
		CompanyName: req.CompanyName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Account:     req.Account,
		Password:    req.Password,
	})
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// CreateUser lets an administrator register a subordinate. The new user
// is inactive until they confirm their registration.
func (h *RegistrationHandler) CreateUser(c *gin.Context) {
	actingUser, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateUserRequest struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Account   string `json:"account" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		IsStaff   bool   `json:"is_staff"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	user, err := h.regService.CreateSubordinate(services.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Account:   req.Account,
		Password:  req.Password,
		IsStaff:   req.IsStaff,
	}, actingUser)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ConfirmRegistration activates a user once they re-enter the password
// they were registered with.
func (h *RegistrationHandler) ConfirmRegistration(c *gin.Context) {
	account := c.Query("account")

	type ConfirmRequest struct {
		Password string `json:"password" binding:"required"`
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return
	}

	user, err := h.regService.ActivateUser(account, req.Password)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser partial-updates the acting user's own profile.
func (h *RegistrationHandler) UpdateUser(c *gin.Context) {
	actingUser, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.regService.UpdateUser(fields, actingUser)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

func respondRegistrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrCompanyNameRequired),
		errors.Is(err, services.ErrFieldNotAllowed),
		errors.Is(err, services.ErrFieldMustBeString):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAccountExists),
		errors.Is(err, services.ErrCompanyExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrIncorrectPassword):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
