package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/matching"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MatchHandler defines the interface for handling match workflow operations
type MatchHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Accept(ctx *gin.Context)
	Reject(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	ScheduleVisit(ctx *gin.Context)
	CompleteVisit(ctx *gin.Context)
	SubmitDocuments(ctx *gin.Context)
	ApproveDocuments(ctx *gin.Context)
}

// matchHandler struct holds the match service
type matchHandler struct {
	matchService matching.MatchService
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(matchService matching.MatchService) MatchHandler {
	return &matchHandler{
		matchService: matchService,
	}
}

// Create handles the POST request to open a match request
// @Summary Request a match on a property
// @Description Open a match request as the authenticated tenant. One live request per tenant and property.
// @Tags Match
// @Accept json
// @Produce json
// @Param requestBody body CreateMatchRequest true "Match Request Data"
// @Success 201 {object} matching.MatchRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches [post]
func (handler *matchHandler) Create(ctx *gin.Context) {
	var request CreateMatchRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid match data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	match, err := handler.matchService.Create(ctx, &matching.CreateInput{
		PropertyID:         request.PropertyID,
		TenantID:           middleware.UserID(ctx),
		Message:            request.Message,
		MonthlyIncomeCents: request.MonthlyIncomeCents,
		Employment:         request.Employment,
	})
	if err != nil {
		handler.respondError(ctx, err, request.PropertyID)
		return
	}

	ctx.JSON(http.StatusCreated, match)
}

// List handles the GET request to list the caller's match requests
// @Summary List match requests
// @Description Fetch the authenticated user's match requests, scoped to their side of the workflow, with an optional status filter.
// @Tags Match
// @Accept json
// @Produce json
// @Param status query string false "Match Status"
// @Param propertyId query string false "Property ID"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} matching.MatchRequest
// @Failure 400 {object} ErrorResponse
// @Router /matches [get]
func (handler *matchHandler) List(ctx *gin.Context) {
	query := matching.NewMatchQuery()

	// Tenants see their requests, landlords the ones on their properties.
	switch middleware.UserRole(ctx) {
	case accounts.RoleLandlord:
		query.LandlordID = middleware.UserID(ctx)
	default:
		query.TenantID = middleware.UserID(ctx)
	}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}

	if propertyID := ctx.Query("propertyId"); len(propertyID) > 0 {
		query.PropertyID = propertyID
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = utils.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = utils.ConvertToInt(offset)
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	matches, err := handler.matchService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, matches)
}

// GetByID handles the GET request to retrieve a match request by ID
// @Summary Retrieve a match request by ID
// @Description Fetch a single match request. Parties only.
// @Tags Match
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} matching.MatchRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{id} [get]
func (handler *matchHandler) GetByID(ctx *gin.Context) {
	matchID := ctx.Param("id")

	match, err := handler.matchService.GetByID(ctx, matchID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("match with id %s not found", matchID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	if !match.IsParty(middleware.UserID(ctx)) {
		var errorResponse ErrorResponse
		errorResponse.Message = "only the match parties may view this request"
		ctx.JSON(http.StatusForbidden, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// Accept handles the POST request to accept a pending match request
// @Summary Accept a match request
// @Description Move a pending request to accepted. Landlord only.
// @Tags Match
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} matching.MatchRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/accept [post]
func (handler *matchHandler) Accept(ctx *gin.Context) {
	matchID := ctx.Param("id")

	match, err := handler.matchService.Accept(ctx, matchID, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, matchID)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// Reject handles the POST request to reject a match request
// @Summary Reject a match request
// @Description Close the request with the rejected status. Landlord only.
// @Tags Match
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} matching.MatchRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/reject [post]
func (handler *matchHandler) Reject(ctx *gin.Context) {
	matchID := ctx.Param("id")

	match, err := handler.matchService.Reject(ctx, matchID, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, matchID)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// Cancel handles the POST request to cancel a match request
// @Summary Cancel a match request
// @Description Close the request with the cancelled status. Tenant only.
// @Tags Match
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} matching.MatchRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/cancel [post]
func (handler *matchHandler) Cancel(ctx *gin.Context) {
	matchID := ctx.Param("id")

	match, err := handler.matchService.Cancel(ctx, matchID, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, matchID)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// ScheduleVisit handles the POST request to schedule the property visit
// @Summary Schedule the property visit
// @Description Record the agreed visit time on an accepted request. Landlord only.
// @Tags Match
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param requestBody body ScheduleVisitRequest true "Visit Time"
// @Success 200 {object} matching.MatchRequest
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/schedule-visit [post]
func (handler *matchHandler) ScheduleVisit(ctx *gin.Context) {
	matchID := ctx.Param("id")

	var request ScheduleVisitRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid visit data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if request.VisitAt.Before(time.Now()) {
		var errorResponse ErrorResponse
		errorResponse.Message = "visit time must lie in the future"
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	match, err := handler.matchService.ScheduleVisit(ctx, matchID, middleware.UserID(ctx), request.VisitAt)
	if err != nil {
		handler.respondError(ctx, err, matchID)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// CompleteVisit handles the POST request to mark the visit as done
// @Summary Complete the property visit
// @Description Mark a scheduled visit as completed. Landlord only.
// @Tags Match
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} matching.MatchRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/complete-visit [post]
func (handler *matchHandler) CompleteVisit(ctx *gin.Context) {
	matchID := ctx.Param("id")

	match, err := handler.matchService.CompleteVisit(ctx, matchID, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, matchID)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// SubmitDocuments handles the POST request to hand over tenant documents
// @Summary Submit tenant documents
// @Description Mark the tenant's documents as handed over after the visit. Tenant only.
// @Tags Match
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} matching.MatchRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/submit-documents [post]
func (handler *matchHandler) SubmitDocuments(ctx *gin.Context) {
	matchID := ctx.Param("id")

	match, err := handler.matchService.SubmitDocuments(ctx, matchID, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, matchID)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// ApproveDocuments handles the POST request to approve tenant documents
// @Summary Approve tenant documents
// @Description Mark the submitted documents as approved. Landlord only.
// @Tags Match
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} matching.MatchRequest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id}/approve-documents [post]
func (handler *matchHandler) ApproveDocuments(ctx *gin.Context) {
	matchID := ctx.Param("id")

	match, err := handler.matchService.ApproveDocuments(ctx, matchID, middleware.UserID(ctx))
	if err != nil {
		handler.respondError(ctx, err, matchID)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// respondError maps match workflow errors onto HTTP statuses.
func (handler *matchHandler) respondError(ctx *gin.Context, err error, matchID string) {
	var errorResponse ErrorResponse
	switch {
	case errors.Is(err, matching.ErrNotFound):
		errorResponse.Message = fmt.Sprintf("match with id %s not found", matchID)
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, properties.ErrNotFound):
		errorResponse.Message = "property not found"
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, matching.ErrNotParty):
		errorResponse.Message = "only the match parties may perform this action"
		ctx.JSON(http.StatusForbidden, errorResponse)
	case errors.Is(err, matching.ErrDuplicateRequest):
		errorResponse.Message = "a live match request for this property already exists"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, matching.ErrIllegalTransition):
		errorResponse.Message = err.Error()
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, matching.ErrPropertyUnavailable):
		errorResponse.Message = "property is not available"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, matching.ErrOwnProperty):
		errorResponse.Message = "landlords cannot request their own property"
		ctx.JSON(http.StatusBadRequest, errorResponse)
	default:
		errorResponse.Message = fmt.Sprintf("match operation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
	}
}
