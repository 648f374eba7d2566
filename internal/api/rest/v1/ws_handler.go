package v1

import (
	"net/http"
	"time"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/infrastructure/realtime"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebsocketHandler defines the interface for upgrading notification connections
type WebsocketHandler interface {
	Connect(ctx *gin.Context)
}

type websocketHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   logger.Logger
}

// NewWebsocketHandler creates a new WebsocketHandler
func NewWebsocketHandler(hub *realtime.Hub, logger logger.Logger) WebsocketHandler {
	return &websocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			HandshakeTimeout: 10 * time.Second,
			// Auth rides on the JWT, so any origin may dial
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Connect handles the GET request to open a notification stream
// @Summary Open the notification stream
// @Description Upgrade to a websocket that receives the authenticated user's notifications as they are raised. Pass the access token as the token query parameter.
// @Tags Notification
// @Param token query string false "Access Token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} ErrorResponse
// @Router /ws/notifications [get]
func (handler *websocketHandler) Connect(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	conn, err := handler.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		handler.logger.Error("Websocket upgrade failed for user ", userID, ": ", err)
		return
	}

	client := realtime.NewClient(handler.hub, conn, userID)
	handler.hub.Register <- client
	client.Start()
}
