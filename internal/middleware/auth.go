package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emplatform/employee-management-api/internal/constants"
	"github.com/emplatform/employee-management-api/internal/database"
	apierrors "github.com/emplatform/employee-management-api/internal/errors"
	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/services"
)

// RequireAuth validates the Bearer access token and loads the current
// user into the request context.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().Preload("Company").First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "Invalid or expired token")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			apierrors.Unauthorized(c, "Account is not activated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin allows only staff users through. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsStaff {
			apierrors.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUser retrieves the current user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	userInterface, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}
