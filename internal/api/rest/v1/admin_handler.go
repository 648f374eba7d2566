package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/infrastructure/monitor"
	"github.com/wilsonA2000/verihome/internal/infrastructure/redisclient"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// reportWindow is the default period for the activity report when the
// caller gives no bounds.
const reportWindow = 30 * 24 * time.Hour

// AdminHandler defines the interface for the admin console operations
type AdminHandler interface {
	ListActivity(ctx *gin.Context)
	ActivityReport(ctx *gin.Context)
	ExportActivity(ctx *gin.Context)
	Performance(ctx *gin.Context)
}

type adminHandler struct {
	auditService activity.AuditService
	monitor      *monitor.Monitor
	redis        *redisclient.Client
	logger       logger.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(auditService activity.AuditService, monitor *monitor.Monitor, redis *redisclient.Client, logger logger.Logger) AdminHandler {
	return &adminHandler{
		auditService: auditService,
		monitor:      monitor,
		redis:        redis,
		logger:       logger,
	}
}

// ListActivity handles the GET request for audit log entries
// @Summary List audit entries
// @Description Fetch audit log entries, newest first. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param userId query string false "User ID"
// @Param action query string false "Recorded Action Prefix"
// @Param targetId query string false "Target Object ID"
// @Param from query string false "Lower bound, RFC3339"
// @Param to query string false "Upper bound, RFC3339"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} activity.Entry
// @Failure 400 {object} ErrorResponse
// @Router /admin/activity [get]
func (handler *adminHandler) ListActivity(ctx *gin.Context) {
	query, ok := handler.bindEntryQuery(ctx)
	if !ok {
		return
	}

	entries, err := handler.auditService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// ActivityReport handles the GET request for the aggregated activity report
// @Summary Build an activity report
// @Description Aggregate audit activity over a period, defaulting to the last 30 days. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param from query string false "Lower bound, RFC3339"
// @Param to query string false "Upper bound, RFC3339"
// @Success 200 {object} activity.Report
// @Failure 400 {object} ErrorResponse
// @Router /admin/activity/report [get]
func (handler *adminHandler) ActivityReport(ctx *gin.Context) {
	to := time.Now().UTC()
	from := to.Add(-reportWindow)

	if raw := ctx.Query("from"); len(raw) > 0 {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = "invalid from timestamp, use RFC3339"
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		from = parsed
	}

	if raw := ctx.Query("to"); len(raw) > 0 {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = "invalid to timestamp, use RFC3339"
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		to = parsed
	}

	if to.Before(from) {
		var errorResponse ErrorResponse
		errorResponse.Message = "to must not lie before from"
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	report, err := handler.auditService.BuildReport(ctx, from, to)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("report query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// ExportActivity handles the GET request to download audit entries as CSV
// @Summary Export audit entries
// @Description Stream the matching audit entries as a CSV attachment. Admin only.
// @Tags Admin
// @Produce text/csv
// @Param userId query string false "User ID"
// @Param action query string false "Recorded Action Prefix"
// @Param targetId query string false "Target Object ID"
// @Param from query string false "Lower bound, RFC3339"
// @Param to query string false "Upper bound, RFC3339"
// @Success 200 {string} string "CSV rows"
// @Failure 400 {object} ErrorResponse
// @Router /admin/activity/export [get]
func (handler *adminHandler) ExportActivity(ctx *gin.Context) {
	query, ok := handler.bindEntryQuery(ctx)
	if !ok {
		return
	}

	filename := fmt.Sprintf("activity-export-%s.csv", time.Now().UTC().Format("20060102"))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Status(http.StatusOK)

	rows, err := handler.auditService.Export(ctx, query, ctx.Writer)
	if err != nil {
		// Headers are already on the wire, so the download just truncates
		handler.logger.Error("Activity export aborted after ", rows, " rows: ", err)
		return
	}

	handler.logger.Info("Exported ", rows, " activity rows to CSV")
}

// Performance handles the GET request for the latest performance snapshot
// @Summary Retrieve the performance snapshot
// @Description Return the most recent runtime, database and redis sample. Served from redis when available, otherwise from the in-process monitor. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} monitor.Snapshot
// @Failure 503 {object} ErrorResponse
// @Router /admin/performance [get]
func (handler *adminHandler) Performance(ctx *gin.Context) {
	if handler.redis != nil {
		if data, err := handler.redis.LoadMonitorSnapshot(ctx); err == nil && len(data) > 0 {
			ctx.Data(http.StatusOK, "application/json", data)
			return
		}
	}

	if handler.monitor != nil {
		if snapshot := handler.monitor.Latest(); snapshot != nil {
			ctx.JSON(http.StatusOK, snapshot)
			return
		}
	}

	var errorResponse ErrorResponse
	errorResponse.Message = "no performance snapshot collected yet"
	ctx.JSON(http.StatusServiceUnavailable, errorResponse)
}

// bindEntryQuery reads the audit filters shared by the list and export
// routes. It writes the error response itself and reports success.
func (handler *adminHandler) bindEntryQuery(ctx *gin.Context) (*activity.EntryQuery, bool) {
	query := activity.NewEntryQuery()

	if userID := ctx.Query("userId"); len(userID) > 0 {
		query.UserID = userID
	}

	if action := ctx.Query("action"); len(action) > 0 {
		query.Action = action
	}

	if targetID := ctx.Query("targetId"); len(targetID) > 0 {
		query.TargetID = targetID
	}

	if raw := ctx.Query("from"); len(raw) > 0 {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = "invalid from timestamp, use RFC3339"
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return nil, false
		}
		query.From = &parsed
	}

	if raw := ctx.Query("to"); len(raw) > 0 {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = "invalid to timestamp, use RFC3339"
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return nil, false
		}
		query.To = &parsed
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
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
		return nil, false
	}

	return query, true
}
