//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPlan(t *testing.T, leaseID string, totalCents int64, num int) (*payments.PaymentPlan, []*payments.Installment) {
	t.Helper()

	now := time.Now().UTC()
	plan := &payments.PaymentPlan{
		ID:              uuid.NewString(),
		LeaseID:         leaseID,
		TotalCents:      totalCents,
		Currency:        "COP",
		InstallmentNum:  num,
		Frequency:       payments.FrequencyMonthly,
		FirstDueDate:    now.AddDate(0, 0, 7),
		DateTimeCreated: now,
	}

	installments, err := payments.BuildInstallments(plan, now)
	require.NoError(t, err)

	return plan, installments
}

func TestPlanRepository_CreateStoresInstallmentsAtomically(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	leaseID := uuid.NewString()
	plan, installments := createTestPlan(t, leaseID, 1200000, 12)

	require.NoError(t, ctx.PlanRepo.Create(context.Background(), plan, installments))

	fetched, err := ctx.PlanRepo.GetByLeaseID(context.Background(), leaseID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)

	stored, err := ctx.PlanRepo.ListInstallments(context.Background(), plan.ID)
	require.NoError(t, err)
	require.Len(t, stored, 12)

	// Ordered by sequence, amounts sum to the plan total
	var sum int64
	for i, installment := range stored {
		assert.Equal(t, i+1, installment.Sequence)
		sum += installment.AmountCents
	}
	assert.Equal(t, plan.TotalCents, sum)
}

func TestPlanRepository_GetByLeaseID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.PlanRepo.GetByLeaseID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, payments.ErrPlanNotFound)
}

func TestPlanRepository_ListDueBefore(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	now := time.Now().UTC()
	plan, installments := createTestPlan(t, uuid.NewString(), 300000, 3)

	// Backdate the first installment so it shows up as overdue
	installments[0].DueDate = now.Add(-48 * time.Hour)
	require.NoError(t, ctx.PlanRepo.Create(context.Background(), plan, installments))

	due, err := ctx.PlanRepo.ListDueBefore(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, installments[0].ID, due[0].ID)

	// Mark it paid and it leaves the overdue sweep
	paid := due[0]
	paid.Status = payments.InstallmentPaid
	paid.PaidAt = &now
	require.NoError(t, ctx.PlanRepo.UpdateInstallmentByID(context.Background(), paid))

	due, err = ctx.PlanRepo.ListDueBefore(context.Background(), now)
	require.NoError(t, err)
	assert.Len(t, due, 0)
}

func TestTransactionRepository_SumSettledByUser(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)
	tenant := CreateTestUser(t, accounts.RoleTenant)
	now := time.Now().UTC()

	newTransaction := func(payer, payee string, amount int64, status string) *payments.Transaction {
		return &payments.Transaction{
			ID:              uuid.NewString(),
			PayerID:         payer,
			PayeeID:         payee,
			TransactionType: payments.TypeRent,
			Status:          status,
			AmountCents:     amount,
			Currency:        "COP",
			Reference:       "REF-" + uuid.NewString()[:8],
			DateTimeCreated: now,
		}
	}

	require.NoError(t, ctx.TransactionRepo.Create(context.Background(), newTransaction(tenant.ID, landlord.ID, 100000, payments.StatusCompleted)))
	require.NoError(t, ctx.TransactionRepo.Create(context.Background(), newTransaction(tenant.ID, landlord.ID, 50000, payments.StatusCompleted)))
	// Pending transactions stay out of the balance
	require.NoError(t, ctx.TransactionRepo.Create(context.Background(), newTransaction(tenant.ID, landlord.ID, 999999, payments.StatusPending)))

	// A refunded original and its completed refund cancel each other out
	require.NoError(t, ctx.TransactionRepo.Create(context.Background(), newTransaction(tenant.ID, landlord.ID, 25000, payments.StatusRefunded)))
	refund := newTransaction(landlord.ID, tenant.ID, 25000, payments.StatusCompleted)
	refund.TransactionType = payments.TypeRefund
	require.NoError(t, ctx.TransactionRepo.Create(context.Background(), refund))

	incoming, outgoing, err := ctx.TransactionRepo.SumSettledByUser(context.Background(), landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(175000), incoming)
	assert.Equal(t, int64(25000), outgoing)

	incoming, outgoing, err = ctx.TransactionRepo.SumSettledByUser(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), incoming)
	assert.Equal(t, int64(175000), outgoing)
}

func TestTransactionRepository_GetByReference(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)
	tenant := CreateTestUser(t, accounts.RoleTenant)
	now := time.Now().UTC()

	transaction := &payments.Transaction{
		ID:              uuid.NewString(),
		PayerID:         tenant.ID,
		PayeeID:         landlord.ID,
		TransactionType: payments.TypeDeposit,
		Status:          payments.StatusPending,
		AmountCents:     80000,
		Currency:        "COP",
		Reference:       "ORDER-2026-0042",
		DateTimeCreated: now,
	}
	require.NoError(t, ctx.TransactionRepo.Create(context.Background(), transaction))

	fetched, err := ctx.TransactionRepo.GetByReference(context.Background(), "ORDER-2026-0042")
	require.NoError(t, err)
	assert.Equal(t, transaction.ID, fetched.ID)

	_, err = ctx.TransactionRepo.GetByReference(context.Background(), "ORDER-MISSING")
	assert.ErrorIs(t, err, payments.ErrNotFound)
}

func TestTransactionRepository_List_WithFilters(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)
	tenant := CreateTestUser(t, accounts.RoleTenant)
	leaseID := uuid.NewString()
	now := time.Now().UTC()

	rent := &payments.Transaction{
		ID:              uuid.NewString(),
		LeaseID:         leaseID,
		PayerID:         tenant.ID,
		PayeeID:         landlord.ID,
		TransactionType: payments.TypeRent,
		Status:          payments.StatusPending,
		AmountCents:     250000000,
		Currency:        "COP",
		Reference:       "REF-RENT-1",
		DateTimeCreated: now,
	}
	require.NoError(t, ctx.TransactionRepo.Create(context.Background(), rent))

	deposit := &payments.Transaction{
		ID:              uuid.NewString(),
		LeaseID:         leaseID,
		PayerID:         tenant.ID,
		PayeeID:         landlord.ID,
		TransactionType: payments.TypeDeposit,
		Status:          payments.StatusCompleted,
		AmountCents:     250000000,
		Currency:        "COP",
		Reference:       "REF-DEP-1",
		SettledAt:       &now,
		DateTimeCreated: now,
	}
	require.NoError(t, ctx.TransactionRepo.Create(context.Background(), deposit))

	query := payments.NewTransactionQuery()
	query.LeaseID = leaseID
	query.TransactionType = payments.TypeDeposit

	list, err := ctx.TransactionRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, deposit.ID, list[0].ID)
}
