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
	"github.com/wilsonA2000/verihome/internal/domain/leases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLease(status string) *leases.Lease {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &leases.Lease{
		ID:              testLeaseID,
		PropertyID:      testPropertyID,
		LandlordID:      testLandlordID,
		TenantID:        testTenantID,
		Status:          status,
		StartDate:       start,
		EndDate:         start.AddDate(1, 0, 0),
		RentCents:       250000000,
		Currency:        "COP",
		PaymentDay:      5,
		DateTimeCreated: time.Now(),
	}
}

func TestLeaseHandler_Create_Success(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("Create", mock.Anything, mock.MatchedBy(func(input *leases.CreateInput) bool {
			return input.LandlordID == testLandlordID && input.PropertyID == testPropertyID
		})).
		Return(testLease(leases.StatusDraft), nil)

	requestBody := `{"property_id": "` + testPropertyID + `", "tenant_id": "` + testTenantID + `", "start_date": "2026-03-01T00:00:00Z", "end_date": "2027-03-01T00:00:00Z", "rent_cents": 250000000, "payment_day": 5}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leases", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), testLeaseID)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_Create_DatesInverted(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	requestBody := `{"property_id": "` + testPropertyID + `", "tenant_id": "` + testTenantID + `", "start_date": "2027-03-01T00:00:00Z", "end_date": "2026-03-01T00:00:00Z", "rent_cents": 250000000, "payment_day": 5}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leases", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockLeaseService.AssertNotCalled(t, "Create")
}

func TestLeaseHandler_Create_ActiveLeaseExists(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("Create", mock.Anything, mock.Anything).
		Return(nil, leases.ErrActiveLeaseExists)

	requestBody := `{"property_id": "` + testPropertyID + `", "tenant_id": "` + testTenantID + `", "start_date": "2026-03-01T00:00:00Z", "end_date": "2027-03-01T00:00:00Z", "rent_cents": 250000000, "payment_day": 5}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leases", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_GetByID_PartyOnly(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("GetByID", mock.Anything, testLeaseID).
		Return(testLease(leases.StatusActive), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/leases/"+testLeaseID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, "someone-else")

	handler.GetByID(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_Amend_Success(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	amended := testLease(leases.StatusDraft)
	amended.Terms = "Pets allowed with a deposit."

	mockLeaseService.
		On("Amend", mock.Anything, testLeaseID, testLandlordID, "Pets allowed with a deposit.").
		Return(amended, nil)

	requestBody := `{"terms": "Pets allowed with a deposit."}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/leases/"+testLeaseID, bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Amend(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pets allowed with a deposit.")
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_Amend_NotDraft(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("Amend", mock.Anything, testLeaseID, testLandlordID, "Too late for changes").
		Return(nil, leases.ErrNotDraft)

	requestBody := `{"terms": "Too late for changes"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/leases/"+testLeaseID, bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Amend(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_SignStep_Success(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	record := &leases.SignatureRecord{
		ID:               "b3f1c9a2-5d4e-4f6a-8b7c-9d0e1f2a3b4c",
		LeaseID:          testLeaseID,
		SignerID:         testLandlordID,
		Role:             "landlord",
		DocumentVerified: true,
		DateTimeCreated:  time.Now(),
	}

	mockLeaseService.
		On("SignStep", mock.Anything, mock.MatchedBy(func(input *leases.SignStepInput) bool {
			return input.LeaseID == testLeaseID && input.SignerID == testLandlordID && input.Step == "document"
		})).
		Return(record, nil)

	requestBody := `{"step": "document", "confidence": 0.98, "image_url": "https://cdn.example.com/id.jpg"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leases/"+testLeaseID+"/sign", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.SignStep(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testLeaseID)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_SignStep_OutOfOrder(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("SignStep", mock.Anything, mock.Anything).
		Return(nil, leases.ErrStepOutOfOrder)

	requestBody := `{"step": "signature"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leases/"+testLeaseID+"/sign", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.SignStep(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_SignStep_LowConfidence(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("SignStep", mock.Anything, mock.Anything).
		Return(nil, leases.ErrLowConfidence)

	requestBody := `{"step": "face", "confidence": 0.42}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leases/"+testLeaseID+"/sign", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.SignStep(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_Terminate_Success(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("Terminate", mock.Anything, testLeaseID, testTenantID, "Relocating for work").
		Return(testLease(leases.StatusTerminated), nil)

	requestBody := `{"reason": "Relocating for work"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leases/"+testLeaseID+"/terminate", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.Terminate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), leases.StatusTerminated)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_Terminate_NotActive(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("Terminate", mock.Anything, testLeaseID, testTenantID, "Changed my mind").
		Return(nil, leases.ErrNotActive)

	requestBody := `{"reason": "Changed my mind"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/leases/"+testLeaseID+"/terminate", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.Terminate(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockLeaseService.AssertExpectations(t)
}

func TestLeaseHandler_GetSignature_NotFound(t *testing.T) {
	mockLeaseService := new(MockLeaseService)
	handler := NewLeaseHandler(mockLeaseService)

	mockLeaseService.
		On("GetSignature", mock.Anything, testLeaseID, testTenantID).
		Return(nil, leases.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/leases/"+testLeaseID+"/signatures", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testLeaseID}}
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.GetSignature(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockLeaseService.AssertExpectations(t)
}
