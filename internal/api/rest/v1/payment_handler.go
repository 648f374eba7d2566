package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler defines the interface for handling payment operations
type PaymentHandler interface {
	Charge(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	ListByLease(ctx *gin.Context)
	Settle(ctx *gin.Context)
	Refund(ctx *gin.Context)
	CreatePlan(ctx *gin.Context)
	GetPlanByLease(ctx *gin.Context)
	PayInstallment(ctx *gin.Context)
	Balance(ctx *gin.Context)
	LeaseBalance(ctx *gin.Context)
}

// paymentHandler holds the payment service plus the lease service for
// party checks on lease-scoped routes
type paymentHandler struct {
	paymentService payments.PaymentService
	leaseService   leases.LeaseService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService payments.PaymentService, leaseService leases.LeaseService) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		leaseService:   leaseService,
	}
}

// Charge handles the POST request to open a transaction
// @Summary Open a transaction
// @Description Create a pending transaction paid by the authenticated user, with a generated reference.
// @Tags Payment
// @Accept json
// @Produce json
// @Param requestBody body ChargeRequest true "Transaction Data"
// @Success 201 {object} payments.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /transactions [post]
func (handler *paymentHandler) Charge(ctx *gin.Context) {
	var request ChargeRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid transaction data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	transaction, err := handler.paymentService.Charge(ctx, &payments.ChargeInput{
		LeaseID:         request.LeaseID,
		InstallmentID:   request.InstallmentID,
		PayerID:         middleware.UserID(ctx),
		PayeeID:         request.PayeeID,
		TransactionType: request.TransactionType,
		Method:          request.Method,
		AmountCents:     request.AmountCents,
		Currency:        request.Currency,
		Reference:       request.Reference,
		Description:     request.Description,
	})
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, transaction)
}

// GetByID handles the GET request to retrieve a transaction by ID
// @Summary Retrieve a transaction by ID
// @Description Fetch a single transaction. Payer and payee only.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} payments.Transaction
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id} [get]
func (handler *paymentHandler) GetByID(ctx *gin.Context) {
	transactionID := ctx.Param("id")

	transaction, err := handler.paymentService.GetByID(ctx, transactionID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("transaction with id %s not found", transactionID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	userID := middleware.UserID(ctx)
	if transaction.PayerID != userID && transaction.PayeeID != userID {
		var errorResponse ErrorResponse
		errorResponse.Message = "only the payer and payee may view this transaction"
		ctx.JSON(http.StatusForbidden, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, transaction)
}

// ListByLease handles the GET request for a lease's transactions
// @Summary List a lease's transactions
// @Description Fetch the transactions of a lease, newest first. Lease parties only.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Lease ID"
// @Param status query string false "Transaction Status"
// @Param transactionType query string false "Transaction Type"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} payments.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /leases/{id}/transactions [get]
func (handler *paymentHandler) ListByLease(ctx *gin.Context) {
	leaseID := ctx.Param("id")

	if !handler.requireLeaseParty(ctx, leaseID) {
		return
	}

	query := payments.NewTransactionQuery()
	query.LeaseID = leaseID

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}

	if transactionType := ctx.Query("transactionType"); len(transactionType) > 0 {
		query.TransactionType = transactionType
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

	transactions, err := handler.paymentService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, transactions)
}

// Settle handles the POST request to resolve a pending transaction
// @Summary Settle a pending transaction
// @Description Complete or fail a pending transaction. A completed rent payment marks its installment paid.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param requestBody body SettleRequest true "Settlement Outcome"
// @Success 200 {object} payments.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /transactions/{id}/settle [post]
func (handler *paymentHandler) Settle(ctx *gin.Context) {
	transactionID := ctx.Param("id")

	var request SettleRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid settlement data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	transaction, err := handler.paymentService.Settle(ctx, transactionID, request.Outcome)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, transaction)
}

// Refund handles the POST request to reverse a completed transaction
// @Summary Refund a completed transaction
// @Description Reverse a completed transaction with a mirrored refund transaction. Payee only.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 201 {object} payments.Transaction
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /transactions/{id}/refund [post]
func (handler *paymentHandler) Refund(ctx *gin.Context) {
	transactionID := ctx.Param("id")

	original, err := handler.paymentService.GetByID(ctx, transactionID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("transaction with id %s not found", transactionID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	if original.PayeeID != middleware.UserID(ctx) {
		var errorResponse ErrorResponse
		errorResponse.Message = "only the payee may refund a transaction"
		ctx.JSON(http.StatusForbidden, errorResponse)
		return
	}

	refund, err := handler.paymentService.Refund(ctx, transactionID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, refund)
}

// CreatePlan handles the POST request to schedule a payment plan
// @Summary Create a payment plan
// @Description Schedule a payment plan for a lease and generate its installments atomically. Lease landlord only.
// @Tags Payment
// @Accept json
// @Produce json
// @Param requestBody body CreatePlanRequest true "Plan Data"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /payment-plans [post]
func (handler *paymentHandler) CreatePlan(ctx *gin.Context) {
	var request CreatePlanRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid plan data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	lease, err := handler.leaseService.GetByID(ctx, request.LeaseID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("lease with id %s not found", request.LeaseID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	if lease.LandlordID != middleware.UserID(ctx) {
		var errorResponse ErrorResponse
		errorResponse.Message = "only the landlord may schedule a payment plan"
		ctx.JSON(http.StatusForbidden, errorResponse)
		return
	}

	plan, installments, err := handler.paymentService.CreatePlan(ctx, &payments.PlanInput{
		LeaseID:        request.LeaseID,
		TotalCents:     request.TotalCents,
		Currency:       request.Currency,
		InstallmentNum: request.InstallmentNum,
		Frequency:      request.Frequency,
		FirstDueDate:   request.FirstDueDate,
	})
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, PlanResponse{Plan: plan, Installments: installments})
}

// GetPlanByLease handles the GET request for a lease's payment plan
// @Summary Retrieve a lease's payment plan
// @Description Fetch the lease's plan together with its installments. Lease parties only.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Lease ID"
// @Success 200 {object} PlanResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /leases/{id}/payment-plan [get]
func (handler *paymentHandler) GetPlanByLease(ctx *gin.Context) {
	leaseID := ctx.Param("id")

	if !handler.requireLeaseParty(ctx, leaseID) {
		return
	}

	plan, installments, err := handler.paymentService.GetPlanByLeaseID(ctx, leaseID)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, PlanResponse{Plan: plan, Installments: installments})
}

// PayInstallment handles the POST request to pay a scheduled installment
// @Summary Pay an installment
// @Description Charge and settle a due installment in one step, marking it paid. The body is optional and may carry the payment method.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Installment ID"
// @Param requestBody body PayInstallmentRequest false "Payment Method"
// @Success 201 {object} payments.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /installments/{id}/pay [post]
func (handler *paymentHandler) PayInstallment(ctx *gin.Context) {
	installmentID := ctx.Param("id")

	var request PayInstallmentRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("invalid payment data: %v", err.Error())
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}

		if err := request.Validate(); err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
	}

	transaction, err := handler.paymentService.PayInstallment(ctx, installmentID, middleware.UserID(ctx), request.Method)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, transaction)
}

// Balance handles the GET request for the caller's settled balance
// @Summary Retrieve the caller's balance
// @Description Return the sum of settled incoming minus outgoing transaction amounts for the authenticated user, in cents.
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /payments/balance [get]
func (handler *paymentHandler) Balance(ctx *gin.Context) {
	balance, err := handler.paymentService.Balance(ctx, middleware.UserID(ctx))
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("balance query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, BalanceResponse{BalanceCents: balance})
}

// LeaseBalance handles the GET request for a lease's payment standing
// @Summary Retrieve a lease's balance
// @Description Summarize the lease's plan installments, paid versus expected as of today. Lease parties only.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Lease ID"
// @Success 200 {object} payments.LeaseBalance
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /leases/{id}/balance [get]
func (handler *paymentHandler) LeaseBalance(ctx *gin.Context) {
	leaseID := ctx.Param("id")

	if !handler.requireLeaseParty(ctx, leaseID) {
		return
	}

	balance, err := handler.paymentService.LeaseBalance(ctx, leaseID, time.Now().UTC())
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, balance)
}

// requireLeaseParty loads the lease and rejects callers who are not a
// party to it. It writes the error response itself and reports whether
// the request may continue.
func (handler *paymentHandler) requireLeaseParty(ctx *gin.Context, leaseID string) bool {
	lease, err := handler.leaseService.GetByID(ctx, leaseID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("lease with id %s not found", leaseID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return false
	}

	if !lease.IsParty(middleware.UserID(ctx)) {
		var errorResponse ErrorResponse
		errorResponse.Message = "only the lease parties may access its payments"
		ctx.JSON(http.StatusForbidden, errorResponse)
		return false
	}

	return true
}

// respondError maps payment errors onto HTTP statuses.
func (handler *paymentHandler) respondError(ctx *gin.Context, err error) {
	var errorResponse ErrorResponse
	switch {
	case errors.Is(err, payments.ErrNotFound):
		errorResponse.Message = "transaction not found"
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, payments.ErrPlanNotFound):
		errorResponse.Message = "payment plan not found"
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, payments.ErrInstallmentNotFound):
		errorResponse.Message = "installment not found"
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, leases.ErrNotFound):
		errorResponse.Message = "lease not found"
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, payments.ErrNotParty):
		errorResponse.Message = "only the lease parties may pay on this lease"
		ctx.JSON(http.StatusForbidden, errorResponse)
	case errors.Is(err, payments.ErrNotPending):
		errorResponse.Message = "transaction is not pending"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, payments.ErrNotRefundable):
		errorResponse.Message = "only completed transactions can be refunded"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, payments.ErrInstallmentSettled):
		errorResponse.Message = "installment is already paid"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, payments.ErrPlanExists):
		errorResponse.Message = "a payment plan already exists for this lease"
		ctx.JSON(http.StatusConflict, errorResponse)
	default:
		errorResponse.Message = fmt.Sprintf("payment operation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
	}
}
