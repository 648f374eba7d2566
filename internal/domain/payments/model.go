package payments

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Transaction types.
const (
	TypeRent    = "rent"
	TypeDeposit = "deposit"
	TypeService = "service"
	TypeRefund  = "refund"
)

// Transaction statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

// Payment methods.
const (
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
	MethodPSE          = "pse"
	MethodCash         = "cash"
)

// Installment statuses.
const (
	InstallmentDue     = "due"
	InstallmentPaid    = "paid"
	InstallmentOverdue = "overdue"
)

// Payment plan frequencies.
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// ErrNotFound is returned when no transaction matches the lookup.
var ErrNotFound = errors.New("transaction not found")

// ErrPlanNotFound is returned when no payment plan matches the lookup.
var ErrPlanNotFound = errors.New("payment plan not found")

// ErrInstallmentNotFound is returned when no installment matches the lookup.
var ErrInstallmentNotFound = errors.New("installment not found")

// ErrNotPending is returned when a settlement is attempted on a transaction
// that already left the pending status.
var ErrNotPending = errors.New("transaction is not pending")

// ErrNotParty is returned when the payer is not a party to the lease being
// charged.
var ErrNotParty = errors.New("payer is not a party to this lease")

// ErrNotRefundable is returned when a refund is attempted on a transaction
// that never completed.
var ErrNotRefundable = errors.New("only completed transactions can be refunded")

// ErrInstallmentSettled is returned when a charge targets an installment
// that is already paid.
var ErrInstallmentSettled = errors.New("installment is already paid")

// ErrPlanExists is returned when a lease already has a payment plan.
var ErrPlanExists = errors.New("payment plan already exists for this lease")

// Transaction is a single money movement between two users.
type Transaction struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	LeaseID         string     `json:"lease_id" validate:"omitempty,uuid4"`
	InstallmentID   string     `json:"installment_id" validate:"omitempty,uuid4"`
	PayerID         string     `json:"payer_id" validate:"required,uuid4"`
	PayeeID         string     `json:"payee_id" validate:"required,uuid4"`
	TransactionType string     `json:"transaction_type" validate:"required,oneof=rent deposit service refund"`
	Status          string     `json:"status" validate:"required,oneof=pending completed failed refunded"`
	Method          string     `json:"method" validate:"omitempty,oneof=card bank_transfer pse cash"`
	AmountCents     int64      `json:"amount_cents" validate:"required,min=1"`
	Currency        string     `json:"currency" validate:"required,len=3,uppercase"`
	Reference       string     `json:"reference" validate:"max=100"`
	Description     string     `json:"description" validate:"max=500"`
	SettledAt       *time.Time `json:"settled_at"`
	DateTimeCreated time.Time  `json:"date_time_created" validate:"required"`
	DateTimeUpdated time.Time  `json:"date_time_updated"`
}

// Validate for validating Transaction struct
func (t *Transaction) Validate() error {
	validate := validator.New()

	err := validate.Struct(t)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// PaymentPlan schedules a lease's total into installments at a fixed
// frequency.
type PaymentPlan struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	LeaseID         string    `json:"lease_id" validate:"required,uuid4"`
	TotalCents      int64     `json:"total_cents" validate:"required,min=1"`
	Currency        string    `json:"currency" validate:"required,len=3,uppercase"`
	InstallmentNum  int       `json:"installment_num" validate:"required,min=1,max=120"`
	Frequency       string    `json:"frequency" validate:"required,oneof=weekly biweekly monthly"`
	FirstDueDate    time.Time `json:"first_due_date" validate:"required"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`
}

// Validate for validating PaymentPlan struct
func (p *PaymentPlan) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// Installment is one scheduled slice of a payment plan.
type Installment struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	PlanID          string     `json:"plan_id" validate:"required,uuid4"`
	Sequence        int        `json:"sequence" validate:"required,min=1"`
	AmountCents     int64      `json:"amount_cents" validate:"required,min=1"`
	DueDate         time.Time  `json:"due_date" validate:"required"`
	Status          string     `json:"status" validate:"required,oneof=due paid overdue"`
	PaidAt          *time.Time `json:"paid_at"`
	DateTimeCreated time.Time  `json:"date_time_created" validate:"required"`
}

// Validate for validating Installment struct
func (i *Installment) Validate() error {
	validate := validator.New()

	err := validate.Struct(i)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// LeaseBalance reports how much of a lease's payment plan has been paid
// against what has come due. ExpectedCents covers every installment whose
// due date has passed; OutstandingCents never goes below zero.
type LeaseBalance struct {
	LeaseID          string `json:"lease_id"`
	Currency         string `json:"currency"`
	PlanTotalCents   int64  `json:"plan_total_cents"`
	ExpectedCents    int64  `json:"expected_cents"`
	PaidCents        int64  `json:"paid_cents"`
	OutstandingCents int64  `json:"outstanding_cents"`
	PaidInstallments int    `json:"paid_installments"`
	OpenInstallments int    `json:"open_installments"`
}

// TransactionQuery defines filters for listing transactions.
type TransactionQuery struct {
	LeaseID         string `validate:"omitempty,uuid4"`
	PayerID         string `validate:"omitempty,uuid4"`
	PayeeID         string `validate:"omitempty,uuid4"`
	TransactionType string `validate:"omitempty,oneof=rent deposit service refund"`
	Status          string `validate:"omitempty,oneof=pending completed failed refunded"`
	SortBy          string `validate:"omitempty,oneof=date_time_created amount_cents"`
	SortOrder       string `validate:"omitempty,oneof=asc desc"`
	Limit           int    `validate:"omitempty,min=1,max=100"`
	Offset          int    `validate:"omitempty,min=0"`
}

// NewTransactionQuery creates a TransactionQuery with default pagination
func NewTransactionQuery() *TransactionQuery {
	return &TransactionQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
		Limit:     20,
	}
}

// Validate for validating TransactionQuery struct
func (q *TransactionQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
