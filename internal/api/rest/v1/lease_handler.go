package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LeaseHandler defines the interface for handling lease operations
type LeaseHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Amend(ctx *gin.Context)
	SignStep(ctx *gin.Context)
	GetSignature(ctx *gin.Context)
	Terminate(ctx *gin.Context)
}

// leaseHandler struct holds the lease service
type leaseHandler struct {
	leaseService leases.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leaseService leases.LeaseService) LeaseHandler {
	return &leaseHandler{
		leaseService: leaseService,
	}
}

// Create handles the POST request to draft a lease
// @Summary Draft a new lease
// @Description Create a lease draft for a property and tenant. Landlord only; the property must be free of live leases.
// @Tags Lease
// @Accept json
// @Produce json
// @Param requestBody body CreateLeaseRequest true "Lease Data"
// @Success 201 {object} leases.Lease
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /leases [post]
func (handler *leaseHandler) Create(ctx *gin.Context) {
	var request CreateLeaseRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid lease data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	lease, err := handler.leaseService.Create(ctx, &leases.CreateInput{
		PropertyID:   request.PropertyID,
		LandlordID:   middleware.UserID(ctx),
		TenantID:     request.TenantID,
		MatchID:      request.MatchID,
		StartDate:    request.StartDate,
		EndDate:      request.EndDate,
		RentCents:    request.RentCents,
		DepositCents: request.DepositCents,
		Currency:     request.Currency,
		PaymentDay:   request.PaymentDay,
		Terms:        request.Terms,
	})
	if err != nil {
		handler.respondError(ctx, err, request.PropertyID)
		return
	}

	ctx.JSON(http.StatusCreated, lease)
}

// List handles the GET request to list the caller's leases
// @Summary List leases
// @Description Fetch the authenticated user's leases, scoped to their side of the contract, with an optional status filter.
// @Tags Lease
// @Accept json
// @Produce json
// @Param status query string false "Lease Status"
// @Param propertyId query string false "Property ID"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} leases.Lease
// @Failure 400 {object} ErrorResponse
// @Router /leases [get]
func (handler *leaseHandler) List(ctx *gin.Context) {
	query := leases.NewLeaseQuery()

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

	results, err := handler.leaseService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// GetByID handles the GET request to retrieve a lease by ID
// @Summary Retrieve a lease by ID
// @Description Fetch a single lease. Parties only.
// @Tags Lease
// @Accept json
// @Produce json
// @Param id path string true "Lease ID"
// @Success 200 {object} leases.Lease
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /leases/{id} [get]
func (handler *leaseHandler) GetByID(ctx *gin.Context) {
	leaseID := ctx.Param("id")

	lease, err := handler.leaseService.GetByID(ctx, leaseID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("lease with id %s not found", leaseID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	if !lease.IsParty(middleware.UserID(ctx)) {
		var errorResponse ErrorResponse
		errorResponse.Message = "only the lease parties may view this contract"
		ctx.JSON(http.StatusForbidden, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, lease)
}

// Amend handles the PUT request to replace a draft lease's terms
// @Summary Amend a draft lease
// @Description Replace the terms of a draft lease. Landlord only; once signing has begun the terms are frozen.
// @Tags Lease
// @Accept json
// @Produce json
// @Param id path string true "Lease ID"
// @Param requestBody body AmendLeaseRequest true "New Terms"
// @Success 200 {object} leases.Lease
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /leases/{id} [put]
func (handler *leaseHandler) Amend(ctx *gin.Context) {
	leaseID := ctx.Param("id")

	var request AmendLeaseRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid amendment data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	lease, err := handler.leaseService.Amend(ctx, leaseID, middleware.UserID(ctx), request.Terms)
	if err != nil {
		handler.respondError(ctx, err, leaseID)
		return
	}

	ctx.JSON(http.StatusOK, lease)
}

// SignStep handles the POST request to advance the caller's signature flow
// @Summary Record a signature verification step
// @Description Advance the authenticated party's signature by one step (document, face, signature). Completing both signatures activates the lease.
// @Tags Lease
// @Accept json
// @Produce json
// @Param id path string true "Lease ID"
// @Param requestBody body SignStepRequest true "Signature Step"
// @Success 200 {object} leases.SignatureRecord
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /leases/{id}/signatures [post]
func (handler *leaseHandler) SignStep(ctx *gin.Context) {
	leaseID := ctx.Param("id")

	var request SignStepRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid signature data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	record, err := handler.leaseService.SignStep(ctx, &leases.SignStepInput{
		LeaseID:    leaseID,
		SignerID:   middleware.UserID(ctx),
		Step:       request.Step,
		Confidence: request.Confidence,
		ImageURL:   request.ImageURL,
	})
	if err != nil {
		handler.respondError(ctx, err, leaseID)
		return
	}

	ctx.JSON(http.StatusOK, record)
}

// GetSignature handles the GET request for the caller's signature record
// @Summary Retrieve the caller's signature record
// @Description Fetch the authenticated party's signature progress for the lease.
// @Tags Lease
// @Accept json
// @Produce json
// @Param id path string true "Lease ID"
// @Success 200 {object} leases.SignatureRecord
// @Failure 404 {object} ErrorResponse
// @Router /leases/{id}/signatures [get]
func (handler *leaseHandler) GetSignature(ctx *gin.Context) {
	leaseID := ctx.Param("id")

	record, err := handler.leaseService.GetSignature(ctx, leaseID, middleware.UserID(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("no signature record for lease %s", leaseID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, record)
}

// Terminate handles the POST request to end an active lease early
// @Summary Terminate an active lease
// @Description End an active lease before its end date with a reason. Either party may terminate; the property becomes available again.
// @Tags Lease
// @Accept json
// @Produce json
// @Param id path string true "Lease ID"
// @Param requestBody body TerminateLeaseRequest true "Termination Reason"
// @Success 200 {object} leases.Lease
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /leases/{id}/terminate [post]
func (handler *leaseHandler) Terminate(ctx *gin.Context) {
	leaseID := ctx.Param("id")

	var request TerminateLeaseRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid termination data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	lease, err := handler.leaseService.Terminate(ctx, leaseID, middleware.UserID(ctx), request.Reason)
	if err != nil {
		handler.respondError(ctx, err, leaseID)
		return
	}

	ctx.JSON(http.StatusOK, lease)
}

// respondError maps lease lifecycle errors onto HTTP statuses.
func (handler *leaseHandler) respondError(ctx *gin.Context, err error, id string) {
	var errorResponse ErrorResponse
	switch {
	case errors.Is(err, leases.ErrNotFound):
		errorResponse.Message = fmt.Sprintf("lease with id %s not found", id)
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, properties.ErrNotFound):
		errorResponse.Message = "property not found"
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, leases.ErrNotParty):
		errorResponse.Message = "only the lease parties may perform this action"
		ctx.JSON(http.StatusForbidden, errorResponse)
	case errors.Is(err, properties.ErrNotOwner):
		errorResponse.Message = "only the property owner may draft a lease"
		ctx.JSON(http.StatusForbidden, errorResponse)
	case errors.Is(err, leases.ErrActiveLeaseExists):
		errorResponse.Message = "a live lease already exists for this property"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, leases.ErrNotDraft):
		errorResponse.Message = "terms can only be amended while the lease is a draft"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, leases.ErrNotSignable):
		errorResponse.Message = "lease is not open for signing"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, leases.ErrAlreadySigned):
		errorResponse.Message = "signature flow already completed"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, leases.ErrStepOutOfOrder):
		errorResponse.Message = "signature steps must be completed in order"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, leases.ErrLowConfidence):
		errorResponse.Message = "verification confidence below the required threshold"
		ctx.JSON(http.StatusBadRequest, errorResponse)
	case errors.Is(err, leases.ErrNotActive):
		errorResponse.Message = "only active leases can be terminated"
		ctx.JSON(http.StatusConflict, errorResponse)
	default:
		errorResponse.Message = fmt.Sprintf("lease operation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
	}
}
