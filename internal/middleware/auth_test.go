package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emplatform/employee-management-api/internal/config"
	"github.com/emplatform/employee-management-api/internal/database"
	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/services"
)

func setupMiddlewareTest(t *testing.T) (*services.TokenService, models.User, models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Company{}, &models.User{})
	require.NoError(t, err)

	database.SetDB(db)

	company := models.Company{CompanyName: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	admin := models.User{
		FirstName: "Ada", LastName: "Lovelace", Account: "ada@acme.com",
		PasswordHash: "x", CompanyID: company.ID, IsStaff: true, IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)

	regular := models.User{
		FirstName: "Grace", LastName: "Hopper", Account: "grace@acme.com",
		PasswordHash: "x", CompanyID: company.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&regular).Error)

	tokens := services.NewTokenService(config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return tokens, admin, regular
}

func protectedRouter(tokens *services.TokenService, adminOnly bool) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(tokens)}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		user, _ := GetUser(c)
		c.JSON(http.StatusOK, gin.H{"account": user.Account})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestRequireAuth(t *testing.T) {
	tokens, admin, _ := setupMiddlewareTest(t)
	r := protectedRouter(tokens, false)

	access, err := tokens.GenerateAccessToken(&admin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ada@acme.com")
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tokens, _, _ := setupMiddlewareTest(t)
	r := protectedRouter(tokens, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	tokens, _, _ := setupMiddlewareTest(t)
	r := protectedRouter(tokens, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	tokens, _, _ := setupMiddlewareTest(t)
	r := protectedRouter(tokens, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InactiveUser(t *testing.T) {
	tokens, admin, _ := setupMiddlewareTest(t)
	r := protectedRouter(tokens, false)

	require.NoError(t, database.GetDB().Model(&admin).Update("is_active", false).Error)

	access, err := tokens.GenerateAccessToken(&admin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	tokens, admin, _ := setupMiddlewareTest(t)
	r := protectedRouter(tokens, false)

	// A refresh token carries no uid claim and must not open the door.
	refresh, err := tokens.GenerateRefreshToken(admin.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens, admin, regular := setupMiddlewareTest(t)
	r := protectedRouter(tokens, true)

	access, err := tokens.GenerateAccessToken(&admin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	access, err = tokens.GenerateAccessToken(&regular)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Administrator access required")
}
