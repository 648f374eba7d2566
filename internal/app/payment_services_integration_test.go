//go:build integration
// +build integration

package app

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paymentFixture is the recurring cast of the payment tests: an active lease
// between a landlord and a tenant.
type paymentFixture struct {
	services *TestServices
	landlord *accounts.User
	tenant   *accounts.User
	lease    *leases.Lease
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	services := SetupTestServices(t, config.SqliteDbType)
	landlord := SeedUser(t, services, accounts.RoleLandlord)
	tenant := SeedUser(t, services, accounts.RoleTenant)
	property := SeedProperty(t, services, landlord.ID)
	lease := SeedLease(t, services, property, tenant.ID, leases.StatusActive)
	return &paymentFixture{services: services, landlord: landlord, tenant: tenant, lease: lease}
}

func TestPaymentService_ChargeSettleAndBalance(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	transaction, err := f.services.Payments.Charge(ctx, &payments.ChargeInput{
		LeaseID:         f.lease.ID,
		PayerID:         f.tenant.ID,
		PayeeID:         f.landlord.ID,
		TransactionType: payments.TypeRent,
		Method:          payments.MethodPSE,
		AmountCents:     250000000,
		Currency:        "COP",
		Description:     "September rent",
	})
	require.NoError(t, err)
	assert.Equal(t, payments.StatusPending, transaction.Status)
	assert.Regexp(t, regexp.MustCompile(`^VH-\d{8}-[0-9A-F]{8}$`), transaction.Reference)

	settled, err := f.services.Payments.Settle(ctx, transaction.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusCompleted, settled.Status)
	require.NotNil(t, settled.SettledAt)
	assert.Equal(t, 1, f.services.Broadcaster.CountFor(f.landlord.ID), "the payee hears about the money")

	actions := auditActions(t, f.services, f.tenant.ID)
	assert.Contains(t, actions, activity.ActionPaymentCharge)
	assert.Contains(t, actions, activity.ActionPaymentSettle)

	balance, err := f.services.Payments.Balance(ctx, f.landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250000000), balance)
	balance, err = f.services.Payments.Balance(ctx, f.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-250000000), balance)

	_, err = f.services.Payments.Settle(ctx, transaction.ID, "completed")
	assert.ErrorIs(t, err, payments.ErrNotPending)
	_, err = f.services.Payments.Settle(ctx, transaction.ID, "maybe")
	assert.Error(t, err)

	// A failed settlement tells the payer and moves no money.
	failed, err := f.services.Payments.Charge(ctx, &payments.ChargeInput{
		LeaseID:         f.lease.ID,
		PayerID:         f.tenant.ID,
		PayeeID:         f.landlord.ID,
		TransactionType: payments.TypeService,
		AmountCents:     5000000,
		Currency:        "COP",
	})
	require.NoError(t, err)
	pushesBefore := f.services.Broadcaster.CountFor(f.tenant.ID)
	_, err = f.services.Payments.Settle(ctx, failed.ID, "failed")
	require.NoError(t, err)
	assert.Equal(t, pushesBefore+1, f.services.Broadcaster.CountFor(f.tenant.ID))

	balance, err = f.services.Payments.Balance(ctx, f.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-250000000), balance)
}

func TestPaymentService_ChargeGuards(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	outsider := SeedUser(t, f.services, accounts.RoleTenant)

	_, err := f.services.Payments.Charge(ctx, &payments.ChargeInput{
		PayerID:         f.tenant.ID,
		PayeeID:         f.landlord.ID,
		TransactionType: payments.TypeRefund,
		AmountCents:     1000,
		Currency:        "COP",
	})
	assert.Error(t, err, "refunds have their own operation")

	_, err = f.services.Payments.Charge(ctx, &payments.ChargeInput{
		LeaseID:         f.lease.ID,
		PayerID:         outsider.ID,
		PayeeID:         f.landlord.ID,
		TransactionType: payments.TypeRent,
		AmountCents:     1000,
		Currency:        "COP",
	})
	assert.ErrorIs(t, err, payments.ErrNotParty)
}

func TestPaymentService_ChargeIdempotentReference(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	input := &payments.ChargeInput{
		LeaseID:         f.lease.ID,
		PayerID:         f.tenant.ID,
		PayeeID:         f.landlord.ID,
		TransactionType: payments.TypeDeposit,
		AmountCents:     250000000,
		Currency:        "COP",
		Reference:       "deposit-2026-09",
	}
	first, err := f.services.Payments.Charge(ctx, input)
	require.NoError(t, err)

	replay, err := f.services.Payments.Charge(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID, "a replayed reference does not charge twice")

	query := payments.NewTransactionQuery()
	query.PayerID = f.tenant.ID
	transactions, err := f.services.Payments.List(ctx, query)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestPaymentService_RefundReversesMoney(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	transaction, err := f.services.Payments.Charge(ctx, &payments.ChargeInput{
		LeaseID:         f.lease.ID,
		PayerID:         f.tenant.ID,
		PayeeID:         f.landlord.ID,
		TransactionType: payments.TypeDeposit,
		AmountCents:     250000000,
		Currency:        "COP",
	})
	require.NoError(t, err)

	_, err = f.services.Payments.Refund(ctx, transaction.ID)
	assert.ErrorIs(t, err, payments.ErrNotRefundable, "pending money cannot come back")

	_, err = f.services.Payments.Settle(ctx, transaction.ID, "completed")
	require.NoError(t, err)

	refund, err := f.services.Payments.Refund(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, payments.TypeRefund, refund.TransactionType)
	assert.Equal(t, payments.StatusCompleted, refund.Status)
	assert.Equal(t, f.landlord.ID, refund.PayerID, "the refund flows the other way")
	assert.Equal(t, f.tenant.ID, refund.PayeeID)
	assert.Regexp(t, regexp.MustCompile(`^RF-\d{8}-[0-9A-F]{8}$`), refund.Reference)
	assert.Equal(t, "Refund of "+transaction.Reference, refund.Description)
	require.NotNil(t, refund.SettledAt)

	original, err := f.services.Payments.GetByID(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, payments.StatusRefunded, original.Status)

	// Original and refund cancel out.
	for _, userID := range []string{f.tenant.ID, f.landlord.ID} {
		balance, err := f.services.Payments.Balance(ctx, userID)
		require.NoError(t, err)
		assert.Zero(t, balance)
	}
}

func TestPaymentService_CreatePlan(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	firstDue := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	plan, installments, err := f.services.Payments.CreatePlan(ctx, &payments.PlanInput{
		LeaseID:        f.lease.ID,
		TotalCents:     1000001,
		Currency:       "COP",
		InstallmentNum: 3,
		FirstDueDate:   firstDue,
	})
	require.NoError(t, err)
	assert.Equal(t, payments.FrequencyMonthly, plan.Frequency, "frequency defaults to monthly")
	require.Len(t, installments, 3)

	// The remainder lands on the earliest installments.
	assert.Equal(t, int64(333334), installments[0].AmountCents)
	assert.Equal(t, int64(333334), installments[1].AmountCents)
	assert.Equal(t, int64(333333), installments[2].AmountCents)

	// Monthly due dates keep the day of month, clamping short months.
	assert.Equal(t, firstDue, installments[0].DueDate)
	assert.Equal(t, time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	assert.Equal(t, time.Date(2027, time.February, 28, 0, 0, 0, 0, time.UTC), installments[2].DueDate)

	_, _, err = f.services.Payments.CreatePlan(ctx, &payments.PlanInput{
		LeaseID:        f.lease.ID,
		TotalCents:     500000,
		Currency:       "COP",
		InstallmentNum: 2,
		FirstDueDate:   firstDue,
	})
	assert.ErrorIs(t, err, payments.ErrPlanExists)

	stored, storedInstallments, err := f.services.Payments.GetPlanByLeaseID(ctx, f.lease.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, stored.ID)
	require.Len(t, storedInstallments, 3)
	assert.Equal(t, 1, storedInstallments[0].Sequence)
	assert.Equal(t, 3, storedInstallments[2].Sequence)
}

func TestPaymentService_CreatePlanWeekly(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	firstDue := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	_, installments, err := f.services.Payments.CreatePlan(ctx, &payments.PlanInput{
		LeaseID:        f.lease.ID,
		TotalCents:     400000,
		Currency:       "COP",
		InstallmentNum: 4,
		Frequency:      payments.FrequencyWeekly,
		FirstDueDate:   firstDue,
	})
	require.NoError(t, err)
	require.Len(t, installments, 4)
	for i, installment := range installments {
		assert.Equal(t, firstDue.AddDate(0, 0, 7*i), installment.DueDate)
	}
}

func TestPaymentService_PayInstallment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	outsider := SeedUser(t, f.services, accounts.RoleTenant)

	_, installments, err := f.services.Payments.CreatePlan(ctx, &payments.PlanInput{
		LeaseID:        f.lease.ID,
		TotalCents:     750000,
		Currency:       "COP",
		InstallmentNum: 3,
		FirstDueDate:   time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = f.services.Payments.PayInstallment(ctx, installments[0].ID, outsider.ID, payments.MethodCard)
	assert.ErrorIs(t, err, payments.ErrNotParty)

	transaction, err := f.services.Payments.PayInstallment(ctx, installments[0].ID, f.tenant.ID, payments.MethodPSE)
	require.NoError(t, err)
	assert.Equal(t, payments.StatusCompleted, transaction.Status)
	assert.Equal(t, payments.TypeRent, transaction.TransactionType)
	assert.Equal(t, payments.MethodPSE, transaction.Method)
	assert.Equal(t, int64(250000), transaction.AmountCents)
	assert.Equal(t, f.landlord.ID, transaction.PayeeID)

	_, storedInstallments, err := f.services.Payments.GetPlanByLeaseID(ctx, f.lease.ID)
	require.NoError(t, err)
	assert.Equal(t, payments.InstallmentPaid, storedInstallments[0].Status)
	require.NotNil(t, storedInstallments[0].PaidAt)
	assert.Equal(t, payments.InstallmentDue, storedInstallments[1].Status)

	_, err = f.services.Payments.PayInstallment(ctx, installments[0].ID, f.tenant.ID, payments.MethodPSE)
	assert.ErrorIs(t, err, payments.ErrInstallmentSettled)
}

func TestPaymentService_RefundReopensInstallment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	_, installments, err := f.services.Payments.CreatePlan(ctx, &payments.PlanInput{
		LeaseID:        f.lease.ID,
		TotalCents:     600000,
		Currency:       "COP",
		InstallmentNum: 2,
		FirstDueDate:   time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	transaction, err := f.services.Payments.PayInstallment(ctx, installments[0].ID, f.tenant.ID, payments.MethodBankTransfer)
	require.NoError(t, err)

	_, err = f.services.Payments.Refund(ctx, transaction.ID)
	require.NoError(t, err)

	_, storedInstallments, err := f.services.Payments.GetPlanByLeaseID(ctx, f.lease.ID)
	require.NoError(t, err)
	assert.Equal(t, payments.InstallmentDue, storedInstallments[0].Status, "a refunded charge reopens its installment")
	assert.Nil(t, storedInstallments[0].PaidAt)
}

func TestPaymentService_MarkOverdue(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	_, installments, err := f.services.Payments.CreatePlan(ctx, &payments.PlanInput{
		LeaseID:        f.lease.ID,
		TotalCents:     900000,
		Currency:       "COP",
		InstallmentNum: 3,
		FirstDueDate:   time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = f.services.Payments.PayInstallment(ctx, installments[0].ID, f.tenant.ID, payments.MethodPSE)
	require.NoError(t, err)

	// As of February 10th only the February installment is late: January is
	// paid and March has not come due.
	now := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	flagged, err := f.services.Payments.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, flagged)

	_, storedInstallments, err := f.services.Payments.GetPlanByLeaseID(ctx, f.lease.ID)
	require.NoError(t, err)
	assert.Equal(t, payments.InstallmentPaid, storedInstallments[0].Status)
	assert.Equal(t, payments.InstallmentOverdue, storedInstallments[1].Status)
	assert.Equal(t, payments.InstallmentDue, storedInstallments[2].Status)

	query := notifications.NewNotificationQuery(f.tenant.ID)
	query.NotificationType = notifications.TypePaymentReminder
	reminders, err := f.services.Notifications.List(ctx, query)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, storedInstallments[1].ID, reminders[0].RelatedID)

	// Already-flagged installments are not swept twice.
	flagged, err = f.services.Payments.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, flagged)
}

func TestPaymentService_LeaseBalance(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	_, installments, err := f.services.Payments.CreatePlan(ctx, &payments.PlanInput{
		LeaseID:        f.lease.ID,
		TotalCents:     900000,
		Currency:       "COP",
		InstallmentNum: 3,
		FirstDueDate:   time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = f.services.Payments.PayInstallment(ctx, installments[0].ID, f.tenant.ID, payments.MethodPSE)
	require.NoError(t, err)

	now := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	balance, err := f.services.Payments.LeaseBalance(ctx, f.lease.ID, now)
	require.NoError(t, err)

	assert.Equal(t, f.lease.ID, balance.LeaseID)
	assert.Equal(t, "COP", balance.Currency)
	assert.Equal(t, int64(900000), balance.PlanTotalCents)
	assert.Equal(t, int64(600000), balance.ExpectedCents, "January and February have come due")
	assert.Equal(t, int64(300000), balance.PaidCents)
	assert.Equal(t, int64(300000), balance.OutstandingCents)
	assert.Equal(t, 1, balance.PaidInstallments)
	assert.Equal(t, 2, balance.OpenInstallments)

	_, err = f.services.Payments.LeaseBalance(ctx, uuid.New().String(), now)
	assert.Error(t, err, "unknown lease has no plan")
}
