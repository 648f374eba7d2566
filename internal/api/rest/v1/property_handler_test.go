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
	"github.com/wilsonA2000/verihome/internal/domain/properties"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testLandlordID = "c56a4180-65aa-42ec-a945-5fd21dec0538"

func testProperty() *properties.Property {
	return &properties.Property{
		ID:              testPropertyID,
		LandlordID:      testLandlordID,
		Title:           "Bright two bedroom apartment",
		PropertyType:    "apartment",
		Status:          properties.StatusAvailable,
		Address:         "Calle 93 #12-20",
		City:            "Bogotá",
		Country:         "Colombia",
		Bedrooms:        2,
		Bathrooms:       1,
		RentPriceCents:  250000000,
		Currency:        "COP",
		DateTimeCreated: time.Now(),
	}
}

func TestPropertyHandler_Create_Success(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	mockPropertyService.
		On("Create", mock.Anything, testLandlordID, mock.AnythingOfType("properties.CreateInput")).
		Return(testProperty(), nil)

	requestBody := `{"title": "Bright two bedroom apartment", "property_type": "apartment", "address": "Calle 93 #12-20", "city": "Bogotá", "country": "Colombia", "bedrooms": 2, "bathrooms": 1, "rent_price_cents": 250000000, "currency": "COP"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/properties", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), testPropertyID)
	mockPropertyService.AssertExpectations(t)
}

func TestPropertyHandler_Create_ValidationError(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	// Rent of zero never validates
	requestBody := `{"title": "Bright two bedroom apartment", "property_type": "apartment", "address": "Calle 93 #12-20", "city": "Bogotá", "country": "Colombia", "rent_price_cents": 0}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/properties", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPropertyService.AssertNotCalled(t, "Create")
}

func TestPropertyHandler_List_Success(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	mockPropertyService.
		On("List", mock.Anything, mock.Anything).
		Return([]*properties.Property{testProperty()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/properties?city=Bogotá&minBedrooms=2", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testPropertyID)
	mockPropertyService.AssertExpectations(t)
}

func TestPropertyHandler_List_ValidationError(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/properties?sortOrder=sideways", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPropertyService.AssertNotCalled(t, "List")
}

func TestPropertyHandler_GetByID_Success(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	mockPropertyService.
		On("GetByID", mock.Anything, testPropertyID).
		Return(testProperty(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/properties/"+testPropertyID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testPropertyID}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bright two bedroom apartment")
	mockPropertyService.AssertExpectations(t)
}

func TestPropertyHandler_GetByID_NotFound(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	mockPropertyService.
		On("GetByID", mock.Anything, testPropertyID).
		Return(nil, properties.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/properties/"+testPropertyID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testPropertyID}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockPropertyService.AssertExpectations(t)
}

func TestPropertyHandler_Update_NotOwner(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	mockPropertyService.
		On("Update", mock.Anything, testTenantID, testPropertyID, mock.AnythingOfType("properties.UpdateInput")).
		Return(nil, properties.ErrNotOwner)

	requestBody := `{"rent_price_cents": 260000000}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/properties/"+testPropertyID, bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testPropertyID}}
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockPropertyService.AssertExpectations(t)
}

func TestPropertyHandler_Delete_Success(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	mockPropertyService.
		On("Delete", mock.Anything, testLandlordID, testPropertyID).
		Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/properties/"+testPropertyID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testPropertyID}}
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Delete(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockPropertyService.AssertExpectations(t)
}

func TestPropertyHandler_Delete_ActiveLease(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	mockPropertyService.
		On("Delete", mock.Anything, testLandlordID, testPropertyID).
		Return(properties.ErrHasActiveLease)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/properties/"+testPropertyID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testPropertyID}}
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockPropertyService.AssertExpectations(t)
}

func TestPropertyHandler_ListMine_ScopesToOwner(t *testing.T) {
	mockPropertyService := new(MockPropertyService)
	handler := NewPropertyHandler(mockPropertyService)

	mockPropertyService.
		On("List", mock.Anything, mock.MatchedBy(func(query *properties.PropertyQuery) bool {
			return query.LandlordID == testLandlordID
		})).
		Return([]*properties.Property{testProperty()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/properties/mine", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testLandlordID)

	handler.ListMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockPropertyService.AssertExpectations(t)
}
