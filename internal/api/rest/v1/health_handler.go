package v1

import (
	"net/http"

	"github.com/wilsonA2000/verihome/internal/infrastructure/redisclient"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler defines the interface for the liveness probe
type HealthHandler interface {
	Check(ctx *gin.Context)
}

type healthHandler struct {
	db    *gorm.DB
	redis *redisclient.Client
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, redis *redisclient.Client) HealthHandler {
	return &healthHandler{
		db:    db,
		redis: redis,
	}
}

// Check handles the GET request for service health
// @Summary Check service health
// @Description Ping the database and redis and report per-dependency status.
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (handler *healthHandler) Check(ctx *gin.Context) {
	response := HealthResponse{
		Status:   "ok",
		Database: "ok",
		Redis:    "ok",
	}

	sqlDB, err := handler.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		response.Database = "unavailable"
		response.Status = "degraded"
	}

	if handler.redis == nil {
		response.Redis = "disabled"
	} else if err := handler.redis.Health(ctx); err != nil {
		response.Redis = "unavailable"
		response.Status = "degraded"
	}

	status := http.StatusOK
	if response.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	ctx.JSON(status, response)
}
