package v1

import (
	"fmt"
	"net/http"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler defines the interface for handling notification operations
type NotificationHandler interface {
	List(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	MarkAllRead(ctx *gin.Context)
	UnreadCount(ctx *gin.Context)
}

type notificationHandler struct {
	notificationService notifications.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService notifications.NotificationService) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
	}
}

// List handles the GET request for the caller's notifications
// @Summary List notifications
// @Description Fetch the authenticated user's notifications, newest first.
// @Tags Notification
// @Accept json
// @Produce json
// @Param unreadOnly query bool false "Only unread notifications"
// @Param type query string false "Notification Type"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} notifications.Notification
// @Failure 400 {object} ErrorResponse
// @Router /notifications [get]
func (handler *notificationHandler) List(ctx *gin.Context) {
	query := notifications.NewNotificationQuery(middleware.UserID(ctx))

	if unreadOnly := ctx.Query("unreadOnly"); len(unreadOnly) > 0 {
		query.UnreadOnly = unreadOnly == "true"
	}

	if notificationType := ctx.Query("type"); len(notificationType) > 0 {
		query.NotificationType = notificationType
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = utils.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = utils.ConvertToInt(offset)
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	results, err := handler.notificationService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// MarkRead handles the POST request to mark one notification read
// @Summary Mark a notification read
// @Description Mark one of the authenticated user's notifications as read.
// @Tags Notification
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id}/read [post]
func (handler *notificationHandler) MarkRead(ctx *gin.Context) {
	notificationID := ctx.Param("id")

	if err := handler.notificationService.MarkRead(ctx, notificationID, middleware.UserID(ctx)); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("notification with id %s not found", notificationID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = fmt.Sprintf("marked notification %s as read", notificationID)
	ctx.JSON(http.StatusNoContent, infoResponse)
}

// MarkAllRead handles the POST request to mark every notification read
// @Summary Mark all notifications read
// @Description Mark all of the authenticated user's notifications as read.
// @Tags Notification
// @Accept json
// @Produce json
// @Success 200 {object} MarkReadResponse
// @Failure 400 {object} ErrorResponse
// @Router /notifications/read-all [post]
func (handler *notificationHandler) MarkAllRead(ctx *gin.Context) {
	updated, err := handler.notificationService.MarkAllRead(ctx, middleware.UserID(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("mark all read failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, MarkReadResponse{Updated: updated})
}

// UnreadCount handles the GET request for the unread notification count
// @Summary Count unread notifications
// @Description Return the number of unread notifications for the authenticated user.
// @Tags Notification
// @Accept json
// @Produce json
// @Success 200 {object} UnreadCountResponse
// @Failure 400 {object} ErrorResponse
// @Router /notifications/unread-count [get]
func (handler *notificationHandler) UnreadCount(ctx *gin.Context) {
	count, err := handler.notificationService.UnreadCount(ctx, middleware.UserID(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("unread count failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}
