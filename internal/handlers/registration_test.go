package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emplatform/employee-management-api/internal/constants"
	"github.com/emplatform/employee-management-api/internal/database"
	"github.com/emplatform/employee-management-api/internal/dto"
	"github.com/emplatform/employee-management-api/internal/mailer"
	"github.com/emplatform/employee-management-api/internal/models"
	"github.com/emplatform/employee-management-api/internal/repository"
	"github.com/emplatform/employee-management-api/internal/services"
)

type registrationTestEnv struct {
	db         *gorm.DB
	handler    *RegistrationHandler
	regService *services.RegistrationService
}

func setupRegistrationTestEnv(t *testing.T) registrationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.AccountInvite{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	regService := services.NewRegistrationService(userRepo, companyRepo, inviteRepo, mailer.Noop{}, "http://localhost:8080")
	handler := NewRegistrationHandler(regService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return registrationTestEnv{
		db:         db,
		handler:    handler,
		regService: regService,
	}
}

func registrationRouter(env registrationTestEnv) *gin.Engine {
	r := gin.New()
	r.GET("/auth/api/v1/check_account", env.handler.CheckAccount)
	r.POST("/auth/api/v1/sign-up", env.handler.SignUp)
	r.POST("/auth/api/v1/sign-up-complete", env.handler.SignUpComplete)
	r.PATCH("/auth/api/v1/confirm-registration", env.handler.ConfirmRegistration)
	return r
}

func TestRegistrationHandler_CheckAccount(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/auth/api/v1/check_account?account=a@x.com", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/api/v1/sign-up", w.Header().Get("Location"))

	var invite models.AccountInvite
	require.NoError(t, env.db.Where("account = ?", "a@x.com").First(&invite).Error)
	require.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{10}$`), invite.InviteToken)

	// Second call for the same email must conflict.
	req = httptest.NewRequest(http.MethodGet, "/auth/api/v1/check_account?account=a@x.com", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	env.db.Model(&models.AccountInvite{}).Where("account = ?", "a@x.com").Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRegistrationHandler_CheckAccount_InvalidEmail(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/auth/api/v1/check_account?account=not-an-email", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email address")
}

func TestRegistrationHandler_SignUp(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	token, err := env.regService.CheckAccount("b@x.com")
	require.NoError(t, err)

	payload := map[string]string{"account": "b@x.com", "invite_token": token}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/api/v1/sign-up", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/api/v1/sign-up-complete", w.Header().Get("Location"))
}

func TestRegistrationHandler_SignUp_WrongToken(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	_, err := env.regService.CheckAccount("c@x.com")
	require.NoError(t, err)

	payload := map[string]string{"account": "c@x.com", "invite_token": "WRONGTOKEN"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/api/v1/sign-up", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Account or token is invalid")
}

func TestRegistrationHandler_SignUpComplete(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	payload := map[string]interface{}{
		"company_name": "Acme",
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"account":      "ada@acme.com",
		"password":     "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/api/v1/sign-up-complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.IsStaff)
	require.True(t, response.IsActive)
	require.Equal(t, "ada@acme.com", response.Account)
	require.NotNil(t, response.CompanyDetails)
	require.Equal(t, "Acme", response.CompanyDetails.CompanyName)

	// Re-using the company name must not create a second row.
	payload["account"] = "other@acme.com"
	body, err = json.Marshal(payload)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/auth/api/v1/sign-up-complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Company already exists")

	var count int64
	env.db.Model(&models.Company{}).Where("company_name = ?", "Acme").Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRegistrationHandler_SignUpComplete_ExistingAccount(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	createTestAdmin(t, env)

	// A fresh company name with an already registered account must be a
	// validation failure, not a server error.
	payload := map[string]interface{}{
		"company_name": "Globex",
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"account":      "ada@acme.com",
		"password":     "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/api/v1/sign-up-complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Account with this email already exist")

	var count int64
	env.db.Model(&models.Company{}).Where("company_name = ?", "Globex").Count(&count)
	require.EqualValues(t, 0, count)
}

func TestRegistrationHandler_SignUpComplete_MissingCompanyName(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	payload := map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"account":    "ada@acme.com",
		"password":   "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/api/v1/sign-up-complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Company name is required")
}

func TestRegistrationHandler_ConfirmRegistration(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	admin := createTestAdmin(t, env)

	subordinate, err := env.regService.CreateSubordinate(services.CreateUserInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Account:   "grace@acme.com",
		Password:  "supersecret",
	}, admin)
	require.NoError(t, err)
	require.False(t, subordinate.IsActive)

	// Wrong password leaves the user inactive.
	body, err := json.Marshal(map[string]string{"password": "wrong-password"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/auth/api/v1/confirm-registration?account=grace@acme.com", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Password is incorrect")

	var check models.User
	require.NoError(t, env.db.Where("account = ?", "grace@acme.com").First(&check).Error)
	require.False(t, check.IsActive)

	// Correct password activates.
	body, err = json.Marshal(map[string]string{"password": "supersecret"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPatch, "/auth/api/v1/confirm-registration?account=grace@acme.com", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.IsActive)
}

func TestRegistrationHandler_ConfirmRegistration_UnknownAccount(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	body, err := json.Marshal(map[string]string{"password": "supersecret"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/auth/api/v1/confirm-registration?account=nobody@acme.com", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistrationHandler_CreateUser(t *testing.T) {
	env := setupRegistrationTestEnv(t)

	admin := createTestAdmin(t, env)

	payload := map[string]interface{}{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"account":    "grace@acme.com",
		"password":   "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := authedTestContext(http.MethodPost, "/auth/api/v1/create_user", body, admin)
	env.handler.CreateUser(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, admin.CompanyID, response.Company)
	require.False(t, response.IsActive)
	require.False(t, response.IsStaff)
}

func TestRegistrationHandler_UpdateUser(t *testing.T) {
	env := setupRegistrationTestEnv(t)

	admin := createTestAdmin(t, env)

	body, err := json.Marshal(map[string]string{"first_name": "Augusta"})
	require.NoError(t, err)

	c, w := authedTestContext(http.MethodPut, "/auth/api/v1/update_user", body, admin)
	env.handler.UpdateUser(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Augusta", response.FirstName)
}

func TestRegistrationHandler_UpdateUser_RejectsUnknownField(t *testing.T) {
	env := setupRegistrationTestEnv(t)

	admin := createTestAdmin(t, env)

	body, err := json.Marshal(map[string]interface{}{
		"first_name": "Augusta",
		"is_staff":   false,
	})
	require.NoError(t, err)

	c, w := authedTestContext(http.MethodPut, "/auth/api/v1/update_user", body, admin)
	env.handler.UpdateUser(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Only first_name, last_name and account can be updated")

	// Record must be untouched.
	var check models.User
	require.NoError(t, env.db.First(&check, admin.ID).Error)
	require.Equal(t, admin.FirstName, check.FirstName)
}

func TestRegistrationHandler_UpdateUser_DuplicateAccount(t *testing.T) {
	env := setupRegistrationTestEnv(t)

	admin := createTestAdmin(t, env)

	_, err := env.regService.CreateSubordinate(services.CreateUserInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Account:   "grace@acme.com",
		Password:  "supersecret",
	}, admin)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"account": "grace@acme.com"})
	require.NoError(t, err)

	c, w := authedTestContext(http.MethodPut, "/auth/api/v1/update_user", body, admin)
	env.handler.UpdateUser(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Account with this email already exist")

	var check models.User
	require.NoError(t, env.db.First(&check, admin.ID).Error)
	require.Equal(t, "ada@acme.com", check.Account)
}

func TestRegistrationHandler_UpdateUser_NonStringValue(t *testing.T) {
	env := setupRegistrationTestEnv(t)

	admin := createTestAdmin(t, env)

	body, err := json.Marshal(map[string]interface{}{"first_name": 5})
	require.NoError(t, err)

	c, w := authedTestContext(http.MethodPut, "/auth/api/v1/update_user", body, admin)
	env.handler.UpdateUser(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "must be strings")

	var check models.User
	require.NoError(t, env.db.First(&check, admin.ID).Error)
	require.Equal(t, "Ada", check.FirstName)
}

func TestRegistrationScenario(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	r := registrationRouter(env)

	// Step 1: check_account issues an invite and redirects to sign-up.
	req := httptest.NewRequest(http.MethodGet, "/auth/api/v1/check_account?account=founder@acme.com", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	var invite models.AccountInvite
	require.NoError(t, env.db.Where("account = ?", "founder@acme.com").First(&invite).Error)

	// Step 2: sign-up with the mailed token redirects onwards.
	body, err := json.Marshal(map[string]string{
		"account":      "founder@acme.com",
		"invite_token": invite.InviteToken,
	})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/auth/api/v1/sign-up", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	// Step 3: sign-up-complete creates company and active admin.
	body, err = json.Marshal(map[string]interface{}{
		"company_name": "Acme",
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"account":      "founder@acme.com",
		"password":     "supersecret",
	})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/auth/api/v1/sign-up-complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.IsStaff)
	require.True(t, response.IsActive)
}

// createTestAdmin provisions a company with an active staff user.
func createTestAdmin(t *testing.T, env registrationTestEnv) *models.User {
	t.Helper()

	admin, err := env.regService.CreateCompanyAndAdmin(services.CreateAdminInput{
		CompanyName: "Acme",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Account:     "ada@acme.com",
		Password:    "supersecret",
	})
	require.NoError(t, err)
	return admin
}

// authedTestContext builds a gin test context with the user already
// injected, mirroring what RequireAuth does.
func authedTestContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, *user)

	return c, w
}
