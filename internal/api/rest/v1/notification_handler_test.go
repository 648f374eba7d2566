//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testNotificationID = "4f5a6b7c-8d9e-4f0a-9b1c-2d3e4f5a6b7c"

func TestNotificationHandler_List_Success(t *testing.T) {
	mockNotificationService := new(MockNotificationService)
	handler := NewNotificationHandler(mockNotificationService)

	notification := &notifications.Notification{
		ID:               testNotificationID,
		UserID:           testTenantID,
		NotificationType: notifications.TypeMatchUpdate,
		Title:            "Match request accepted",
		DateTimeCreated:  time.Now(),
	}

	mockNotificationService.
		On("List", mock.Anything, mock.MatchedBy(func(query *notifications.NotificationQuery) bool {
			return query.UserID == testTenantID && query.UnreadOnly
		})).
		Return([]*notifications.Notification{notification}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?unreadOnly=true", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testNotificationID)
	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_List_BadType(t *testing.T) {
	mockNotificationService := new(MockNotificationService)
	handler := NewNotificationHandler(mockNotificationService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?type=carrier_pigeon", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockNotificationService.AssertNotCalled(t, "List")
}

func TestNotificationHandler_MarkRead_Success(t *testing.T) {
	mockNotificationService := new(MockNotificationService)
	handler := NewNotificationHandler(mockNotificationService)

	mockNotificationService.
		On("MarkRead", mock.Anything, testNotificationID, testTenantID).
		Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/"+testNotificationID+"/read", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testNotificationID}}
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.MarkRead(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	mockNotificationService := new(MockNotificationService)
	handler := NewNotificationHandler(mockNotificationService)

	mockNotificationService.
		On("MarkRead", mock.Anything, testNotificationID, testTenantID).
		Return(errors.New("notification not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/"+testNotificationID+"/read", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: testNotificationID}}
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.MarkRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_MarkAllRead_Success(t *testing.T) {
	mockNotificationService := new(MockNotificationService)
	handler := NewNotificationHandler(mockNotificationService)

	mockNotificationService.
		On("MarkAllRead", mock.Anything, testTenantID).
		Return(5, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/read-all", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.MarkAllRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":5`)
	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_UnreadCount_Success(t *testing.T) {
	mockNotificationService := new(MockNotificationService)
	handler := NewNotificationHandler(mockNotificationService)

	mockNotificationService.
		On("UnreadCount", mock.Anything, testTenantID).
		Return(int64(2), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/unread-count", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(middleware.ContextUserIDKey, testTenantID)

	handler.UnreadCount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	mockNotificationService.AssertExpectations(t)
}
