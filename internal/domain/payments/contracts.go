package payments

import (
	"context"
	"time"
)

// ChargeInput carries the fields for opening a transaction. Reference is an
// optional client-chosen idempotency key; when a transaction with the same
// reference already exists, Charge returns it instead of charging again.
type ChargeInput struct {
	LeaseID         string
	InstallmentID   string
	PayerID         string
	PayeeID         string
	TransactionType string
	Method          string
	AmountCents     int64
	Currency        string
	Reference       string
	Description     string
}

// PlanInput carries the fields for scheduling a payment plan. An empty
// Frequency defaults to monthly.
type PlanInput struct {
	LeaseID        string
	TotalCents     int64
	Currency       string
	InstallmentNum int
	Frequency      string
	FirstDueDate   time.Time
}

// PaymentService defines methods for transactions and payment plans
type PaymentService interface {
	// Charge opens a pending transaction. The reference is generated unless
	// the input supplies one; a replayed reference returns the transaction
	// it opened the first time.
	Charge(ctx context.Context, input *ChargeInput) (*Transaction, error)
	// GetByID retrieves a transaction by its ID.
	GetByID(ctx context.Context, transactionID string) (*Transaction, error)
	// List retrieves transactions matching the query filters.
	List(ctx context.Context, query *TransactionQuery) ([]*Transaction, error)
	// Settle completes or fails a pending transaction. A completed rent
	// transaction marks its installment paid.
	Settle(ctx context.Context, transactionID, outcome string) (*Transaction, error)
	// Refund reverses a completed transaction.
	Refund(ctx context.Context, transactionID string) (*Transaction, error)
	// CreatePlan schedules a payment plan and generates its installments.
	CreatePlan(ctx context.Context, input *PlanInput) (*PaymentPlan, []*Installment, error)
	// GetPlanByLeaseID returns the lease's plan with its installments.
	GetPlanByLeaseID(ctx context.Context, leaseID string) (*PaymentPlan, []*Installment, error)
	// PayInstallment charges and settles a due installment in one step.
	// The payer must be a lease party; the landlord receives the payment.
	// Method is optional.
	PayInstallment(ctx context.Context, installmentID, payerID, method string) (*Transaction, error)
	// MarkOverdue flags due installments whose due date lies before now and
	// returns the number of installments flagged.
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
	// Balance returns the sum of settled incoming minus outgoing transaction
	// amounts for the user, in cents. Refunded originals still count; the
	// refund transaction carries the money back.
	Balance(ctx context.Context, userID string) (int64, error)
	// LeaseBalance summarizes the lease's plan installments: paid versus
	// expected as of now.
	LeaseBalance(ctx context.Context, leaseID string, now time.Time) (*LeaseBalance, error)
}

// TransactionRepository defines methods for transaction persistence
type TransactionRepository interface {
	// Create stores a new transaction.
	Create(ctx context.Context, transaction *Transaction) error
	// GetByID retrieves a transaction by its ID.
	GetByID(ctx context.Context, transactionID string) (*Transaction, error)
	// GetByReference retrieves a transaction by its unique reference.
	GetByReference(ctx context.Context, reference string) (*Transaction, error)
	// List retrieves transactions matching the query filters.
	List(ctx context.Context, query *TransactionQuery) ([]*Transaction, error)
	// UpdateByID updates the stored transaction.
	UpdateByID(ctx context.Context, transaction *Transaction) error
	// SumSettledByUser returns the settled incoming and outgoing totals for
	// the user, in cents. Completed and refunded transactions both count: a
	// refunded original moved money that its refund counterpart moves back.
	SumSettledByUser(ctx context.Context, userID string) (incoming int64, outgoing int64, err error)
}

// PlanRepository defines methods for payment plan persistence
type PlanRepository interface {
	// Create stores a plan together with its installments.
	Create(ctx context.Context, plan *PaymentPlan, installments []*Installment) error
	// GetByID retrieves a plan by its ID.
	GetByID(ctx context.Context, planID string) (*PaymentPlan, error)
	// GetByLeaseID returns the lease's plan, or ErrPlanNotFound.
	GetByLeaseID(ctx context.Context, leaseID string) (*PaymentPlan, error)
	// ListInstallments returns the plan's installments ordered by sequence.
	ListInstallments(ctx context.Context, planID string) ([]*Installment, error)
	// GetInstallmentByID retrieves an installment by its ID.
	GetInstallmentByID(ctx context.Context, installmentID string) (*Installment, error)
	// UpdateInstallmentByID updates the stored installment.
	UpdateInstallmentByID(ctx context.Context, installment *Installment) error
	// ListDueBefore returns installments still due with a due date before now.
	ListDueBefore(ctx context.Context, now time.Time) ([]*Installment, error)
}
