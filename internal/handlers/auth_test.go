package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emplatform/employee-management-api/internal/config"
	"github.com/emplatform/employee-management-api/internal/database"
	"github.com/emplatform/employee-management-api/internal/dto"
	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/repository"
	"github.com/emplatform/employee-management-api/internal/services"
)

type authTestEnv struct {
	db      *gorm.DB
	handler *AuthHandler
	tokens  *services.TokenService
	user    *models.User
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Company{}, &models.User{})
	require.NoError(t, err)

	database.SetDB(db)

	company := models.Company{CompanyName: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Account:      "ada@acme.com",
		PasswordHash: string(hash),
		CompanyID:    company.ID,
		IsStaff:      true,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)

	tokens := services.NewTokenService(config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:      db,
		handler: handler,
		tokens:  tokens,
		user:    &user,
	}
}

func authRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	r.POST("/auth/api/v1/login", env.handler.Login)
	r.POST("/auth/api/v1/login/refresh", env.handler.Refresh)
	return r
}

func loginRequest(t *testing.T, r *gin.Engine, account, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{"account": account, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/api/v1/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	w := loginRequest(t, r, "ada@acme.com", "supersecret")
	require.Equal(t, http.StatusOK, w.Code)

	var pair services.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := env.tokens.ValidateAccessToken(pair.Access)
	require.NoError(t, err)
	require.Equal(t, env.user.ID, claims.UserID)
	require.True(t, claims.IsStaff)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	w := loginRequest(t, r, "ada@acme.com", "not-the-password")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "invalid account or password")
}

func TestAuthHandler_Login_InactiveUser(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	require.NoError(t, env.db.Model(env.user).Update("is_active", false).Error)

	w := loginRequest(t, r, "ada@acme.com", "supersecret")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownAccount(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	w := loginRequest(t, r, "nobody@acme.com", "supersecret")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	refresh, err := env.tokens.GenerateRefreshToken(env.user.ID)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"refresh": refresh})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/api/v1/login/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var pair services.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
}

func TestAuthHandler_Refresh_GarbageToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	body, err := json.Marshal(map[string]string{"refresh": "not-a-jwt"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/api/v1/login/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	c, w := authedTestContext(http.MethodGet, "/auth/api/v1/me", nil, env.user)
	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, env.user.ID, response.ID)
	require.Equal(t, "ada@acme.com", response.Account)
}
