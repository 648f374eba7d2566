package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler defines the interface for handling conversation operations
type MessageHandler interface {
	StartThread(ctx *gin.Context)
	ListThreads(ctx *gin.Context)
	GetThread(ctx *gin.Context)
	ListMessages(ctx *gin.Context)
	Send(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	UnreadCount(ctx *gin.Context)
}

// messageHandler struct holds the message service
type messageHandler struct {
	messageService messaging.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService messaging.MessageService) MessageHandler {
	return &messageHandler{
		messageService: messageService,
	}
}

// StartThread handles the POST request to open a conversation
// @Summary Start a conversation
// @Description Open a thread with another user and store the first message. Reuses the existing thread for the same pair and property.
// @Tags Message
// @Accept json
// @Produce json
// @Param requestBody body StartThreadRequest true "Thread Data"
// @Success 201 {object} StartThreadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /threads [post]
func (handler *messageHandler) StartThread(ctx *gin.Context) {
	var request StartThreadRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid thread data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	thread, message, err := handler.messageService.StartThread(ctx, &messaging.StartThreadInput{
		InitiatorID: middleware.UserID(ctx),
		RecipientID: request.RecipientID,
		Subject:     request.Subject,
		PropertyID:  request.PropertyID,
		Body:        request.Body,
	})
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, accounts.ErrNotFound) {
			errorResponse.Message = "recipient not found"
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("error starting thread: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, StartThreadResponse{Thread: thread, Message: message})
}

// ListThreads handles the GET request to list the caller's conversations
// @Summary List conversations
// @Description Fetch the authenticated user's threads, most recently active first.
// @Tags Message
// @Accept json
// @Produce json
// @Param propertyId query string false "Property ID"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} messaging.Thread
// @Failure 400 {object} ErrorResponse
// @Router /threads [get]
func (handler *messageHandler) ListThreads(ctx *gin.Context) {
	query := messaging.NewThreadQuery(middleware.UserID(ctx))

	if propertyID := ctx.Query("propertyId"); len(propertyID) > 0 {
		query.PropertyID = propertyID
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

	threads, err := handler.messageService.ListThreads(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, threads)
}

// GetThread handles the GET request to retrieve a conversation by ID
// @Summary Retrieve a conversation by ID
// @Description Fetch a single thread. Participants only.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path string true "Thread ID"
// @Success 200 {object} messaging.Thread
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /threads/{id} [get]
func (handler *messageHandler) GetThread(ctx *gin.Context) {
	threadID := ctx.Param("id")

	thread, err := handler.messageService.GetThread(ctx, threadID, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, threadID)
		return
	}

	ctx.JSON(http.StatusOK, thread)
}

// ListMessages handles the GET request to page through a conversation
// @Summary List messages of a conversation
// @Description Fetch the thread's messages in send order, paginated. Participants only.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path string true "Thread ID"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} messaging.Message
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /threads/{id}/messages [get]
func (handler *messageHandler) ListMessages(ctx *gin.Context) {
	threadID := ctx.Param("id")

	query := messaging.NewMessageQuery(threadID)

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

	messages, err := handler.messageService.ListMessages(ctx, query, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, threadID)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// Send handles the POST request to append a message to a conversation
// @Summary Send a message
// @Description Append a message to the thread and notify the recipient. Participants only.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path string true "Thread ID"
// @Param requestBody body SendMessageRequest true "Message Body"
// @Success 201 {object} messaging.Message
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /threads/{id}/messages [post]
func (handler *messageHandler) Send(ctx *gin.Context) {
	threadID := ctx.Param("id")

	var request SendMessageRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid message data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	message, err := handler.messageService.Send(ctx, threadID, middleware.UserID(ctx), request.Body)
	if err != nil {
		handler.respondError(ctx, err, threadID)
		return
	}

	ctx.JSON(http.StatusCreated, message)
}

// MarkRead handles the POST request to mark a conversation as read
// @Summary Mark a conversation as read
// @Description Mark every message addressed to the authenticated user in the thread as read.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path string true "Thread ID"
// @Success 200 {object} MarkReadResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /threads/{id}/read [post]
func (handler *messageHandler) MarkRead(ctx *gin.Context) {
	threadID := ctx.Param("id")

	updated, err := handler.messageService.MarkRead(ctx, threadID, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, threadID)
		return
	}

	ctx.JSON(http.StatusOK, MarkReadResponse{Updated: updated})
}

// UnreadCount handles the GET request for the unread message badge
// @Summary Count unread messages
// @Description Return the number of unread messages addressed to the authenticated user across all threads.
// @Tags Message
// @Accept json
// @Produce json
// @Success 200 {object} UnreadCountResponse
// @Failure 400 {object} ErrorResponse
// @Router /messages/unread-count [get]
func (handler *messageHandler) UnreadCount(ctx *gin.Context) {
	count, err := handler.messageService.UnreadCount(ctx, middleware.UserID(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("unread count failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// respondError maps messaging errors onto HTTP statuses.
func (handler *messageHandler) respondError(ctx *gin.Context, err error, threadID string) {
	var errorResponse ErrorResponse
	switch {
	case errors.Is(err, messaging.ErrThreadNotFound):
		errorResponse.Message = fmt.Sprintf("thread with id %s not found", threadID)
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, messaging.ErrNotParticipant):
		errorResponse.Message = "only the participants may access this thread"
		ctx.JSON(http.StatusForbidden, errorResponse)
	default:
		errorResponse.Message = fmt.Sprintf("message operation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
	}
}
