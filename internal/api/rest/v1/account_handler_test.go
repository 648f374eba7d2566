//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/accounts"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAccountHandler_Register_Success(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	user := &accounts.User{
		ID:              testTenantID,
		Email:           "ana@example.com",
		FirstName:       "Ana",
		LastName:        "García",
		Role:            accounts.RoleTenant,
		DateTimeCreated: time.Now(),
	}

	requestBody := `{"email": "ana@example.com", "password": "s3cret-pass", "first_name": "Ana", "last_name": "García", "role": "tenant"}`

	mockAccountService.
		On("Register", mock.Anything, mock.AnythingOfType("accounts.RegisterInput")).
		Return(user, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/register", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
	assert.NotContains(t, w.Body.String(), "password_hash")
	mockAccountService.AssertExpectations(t)
}

func TestAccountHandler_Register_EmailTaken(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	requestBody := `{"email": "ana@example.com", "password": "s3cret-pass", "first_name": "Ana", "last_name": "García", "role": "tenant"}`

	mockAccountService.
		On("Register", mock.Anything, mock.AnythingOfType("accounts.RegisterInput")).
		Return(nil, accounts.ErrEmailTaken)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/register", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockAccountService.AssertExpectations(t)
}

func TestAccountHandler_Register_ValidationError(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	// Password below the eight character minimum
	requestBody := `{"email": "ana@example.com", "password": "short", "first_name": "Ana", "last_name": "García", "role": "tenant"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/register", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAccountService.AssertNotCalled(t, "Register")
}

func TestAccountHandler_Login_Success(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	user := &accounts.User{
		ID:        testTenantID,
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "García",
		Role:      accounts.RoleTenant,
	}
	pair := &accounts.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}

	mockAccountService.
		On("Authenticate", mock.Anything, "ana@example.com", "s3cret-pass", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(user, pair, nil)

	requestBody := `{"email": "ana@example.com", "password": "s3cret-pass"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access-token")
	mockAccountService.AssertExpectations(t)
}

func TestAccountHandler_Login_InvalidCredentials(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	mockAccountService.
		On("Authenticate", mock.Anything, "ana@example.com", "wrong-pass", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil, nil, accounts.ErrInvalidCredentials)

	requestBody := `{"email": "ana@example.com", "password": "wrong-pass"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAccountService.AssertExpectations(t)
}

func TestAccountHandler_Refresh_Success(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	pair := &accounts.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	mockAccountService.
		On("Refresh", mock.Anything, "old-refresh").
		Return(pair, nil)

	requestBody := `{"refresh_token": "old-refresh"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/refresh", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Refresh(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-access")
	mockAccountService.AssertExpectations(t)
}

func TestAccountHandler_GetMe_Success(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	user := &accounts.User{
		ID:        testTenantID,
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "García",
		Role:      accounts.RoleTenant,
	}

	mockAccountService.
		On("GetByID", mock.Anything, testTenantID).
		Return(user, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/me", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.GetMe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
	mockAccountService.AssertExpectations(t)
}

func TestAccountHandler_UpdateMe_NotFound(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	mockAccountService.
		On("UpdateProfile", mock.Anything, testTenantID, mock.AnythingOfType("accounts.UpdateProfileInput")).
		Return(nil, accounts.ErrNotFound)

	requestBody := `{"about": "Looking for a quiet place"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/auth/me", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.UpdateMe(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockAccountService.AssertExpectations(t)
}

func TestAccountHandler_ListUsers_Success(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	user := &accounts.User{
		ID:        testTenantID,
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "García",
		Role:      accounts.RoleTenant,
	}

	mockAccountService.
		On("List", mock.Anything, mock.Anything).
		Return([]*accounts.User{user}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/users?role=tenant", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListUsers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
	mockAccountService.AssertExpectations(t)
}

func TestAccountHandler_ListUsers_ValidationError(t *testing.T) {
	mockAccountService := new(MockAccountService)
	handler := NewAccountHandler(mockAccountService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/users?role=alien", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListUsers(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAccountService.AssertNotCalled(t, "List")
}
