package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
)

// paymentService implements the PaymentService interface for transactions,
// payment plans and installments
type paymentService struct {
	transactionRepository payments.TransactionRepository
	planRepository        payments.PlanRepository
	leaseRepository       leases.LeaseRepository
	notifier              notifications.NotificationService
	recorder              activity.Recorder
	logger                logger.Logger
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(transactionRepository payments.TransactionRepository, planRepository payments.PlanRepository, leaseRepository leases.LeaseRepository, notifier notifications.NotificationService, recorder activity.Recorder, logger logger.Logger) (payments.PaymentService, error) {
	return &paymentService{
		transactionRepository: transactionRepository,
		planRepository:        planRepository,
		leaseRepository:       leaseRepository,
		notifier:              notifier,
		recorder:              recorder,
		logger:                logger,
	}, nil
}

func (s *paymentService) Charge(ctx context.Context, input *payments.ChargeInput) (*payments.Transaction, error) {
	if input.TransactionType == payments.TypeRefund {
		return nil, fmt.Errorf("refunds are created through the refund operation")
	}

	// A replayed idempotency reference returns the transaction it opened the
	// first time instead of charging again.
	if input.Reference != "" {
		existing, err := s.transactionRepository.GetByReference(ctx, input.Reference)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, payments.ErrNotFound) {
			return nil, fmt.Errorf("%w", err)
		}
	}

	leaseID := input.LeaseID

	// An installment charge inherits the lease of its plan and must match the
	// scheduled amount.
	var installment *payments.Installment
	if input.InstallmentID != "" {
		var err error
		installment, err = s.planRepository.GetInstallmentByID(ctx, input.InstallmentID)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if installment.Status == payments.InstallmentPaid {
			return nil, fmt.Errorf("%w", payments.ErrInstallmentSettled)
		}

		plan, err := s.planRepository.GetByID(ctx, installment.PlanID)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if leaseID == "" {
			leaseID = plan.LeaseID
		} else if leaseID != plan.LeaseID {
			return nil, fmt.Errorf("installment %s does not belong to lease %s", installment.ID, leaseID)
		}
		if input.AmountCents != installment.AmountCents {
			return nil, fmt.Errorf("amount %d does not match the scheduled installment amount %d", input.AmountCents, installment.AmountCents)
		}
	}

	if leaseID != "" {
		lease, err := s.leaseRepository.GetByID(ctx, leaseID)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if !lease.IsParty(input.PayerID) {
			return nil, fmt.Errorf("%w", payments.ErrNotParty)
		}
	}

	now := time.Now().UTC()
	reference := input.Reference
	if reference == "" {
		reference = paymentReference("VH", now)
	}

	transaction := &payments.Transaction{
		ID:              uuid.New().String(),
		LeaseID:         leaseID,
		InstallmentID:   input.InstallmentID,
		PayerID:         input.PayerID,
		PayeeID:         input.PayeeID,
		TransactionType: input.TransactionType,
		Status:          payments.StatusPending,
		Method:          input.Method,
		AmountCents:     input.AmountCents,
		Currency:        input.Currency,
		Reference:       reference,
		Description:     input.Description,
		DateTimeCreated: now,
	}

	if err := s.transactionRepository.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.record(ctx, input.PayerID, activity.ActionPaymentCharge, transaction.ID, transaction.Reference)
	s.logger.Info("Created transaction with id ", transaction.ID)
	return transaction, nil
}

func (s *paymentService) GetByID(ctx context.Context, transactionID string) (*payments.Transaction, error) {
	transaction, err := s.transactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return transaction, nil
}

func (s *paymentService) List(ctx context.Context, query *payments.TransactionQuery) ([]*payments.Transaction, error) {
	transactions, err := s.transactionRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return transactions, nil
}

func (s *paymentService) Settle(ctx context.Context, transactionID, outcome string) (*payments.Transaction, error) {
	var status string
	switch outcome {
	case "completed":
		status = payments.StatusCompleted
	case "failed":
		status = payments.StatusFailed
	default:
		return nil, fmt.Errorf("unknown settlement outcome %q", outcome)
	}

	transaction, err := s.transactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if transaction.Status != payments.StatusPending {
		return nil, fmt.Errorf("%w", payments.ErrNotPending)
	}

	now := time.Now().UTC()
	transaction.Status = status
	transaction.SettledAt = &now
	transaction.DateTimeUpdated = now
	if err := s.transactionRepository.UpdateByID(ctx, transaction); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if status == payments.StatusCompleted && transaction.InstallmentID != "" {
		if err := s.settleInstallment(ctx, transaction.InstallmentID, now); err != nil {
			s.logger.Error("Failed to mark installment ", transaction.InstallmentID, " paid: ", err)
		}
	}

	switch status {
	case payments.StatusCompleted:
		s.notify(ctx, transaction.PayeeID, "Payment received", fmt.Sprintf("Payment %s completed.", transaction.Reference), transaction.ID)
	case payments.StatusFailed:
		s.notify(ctx, transaction.PayerID, "Payment failed", fmt.Sprintf("Payment %s failed.", transaction.Reference), transaction.ID)
	}

	s.record(ctx, transaction.PayerID, activity.ActionPaymentSettle, transaction.ID, status)
	s.logger.Info("Settled transaction ", transaction.ID, " as ", status)
	return transaction, nil
}

func (s *paymentService) Refund(ctx context.Context, transactionID string) (*payments.Transaction, error) {
	original, err := s.transactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if original.Status != payments.StatusCompleted {
		return nil, fmt.Errorf("%w", payments.ErrNotRefundable)
	}

	now := time.Now().UTC()
	original.Status = payments.StatusRefunded
	original.DateTimeUpdated = now
	if err := s.transactionRepository.UpdateByID(ctx, original); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	refund := &payments.Transaction{
		ID:              uuid.New().String(),
		LeaseID:         original.LeaseID,
		InstallmentID:   original.InstallmentID,
		PayerID:         original.PayeeID,
		PayeeID:         original.PayerID,
		TransactionType: payments.TypeRefund,
		Status:          payments.StatusCompleted,
		Method:          original.Method,
		AmountCents:     original.AmountCents,
		Currency:        original.Currency,
		Reference:       paymentReference("RF", now),
		Description:     "Refund of " + original.Reference,
		SettledAt:       &now,
		DateTimeCreated: now,
	}
	if err := s.transactionRepository.Create(ctx, refund); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// A refunded installment charge reopens the installment.
	if original.InstallmentID != "" {
		installment, err := s.planRepository.GetInstallmentByID(ctx, original.InstallmentID)
		if err != nil {
			s.logger.Error("Failed to reopen installment ", original.InstallmentID, ": ", err)
		} else {
			installment.Status = payments.InstallmentDue
			installment.PaidAt = nil
			if err := s.planRepository.UpdateInstallmentByID(ctx, installment); err != nil {
				s.logger.Error("Failed to reopen installment ", original.InstallmentID, ": ", err)
			}
		}
	}

	s.notify(ctx, original.PayerID, "Payment refunded", fmt.Sprintf("Payment %s was refunded.", original.Reference), refund.ID)
	s.record(ctx, original.PayeeID, activity.ActionPaymentSettle, refund.ID, payments.StatusRefunded)
	s.logger.Info("Refunded transaction ", original.ID, " with refund ", refund.ID)
	return refund, nil
}

func (s *paymentService) CreatePlan(ctx context.Context, input *payments.PlanInput) (*payments.PaymentPlan, []*payments.Installment, error) {
	if _, err := s.leaseRepository.GetByID(ctx, input.LeaseID); err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	if _, err := s.planRepository.GetByLeaseID(ctx, input.LeaseID); err == nil {
		return nil, nil, fmt.Errorf("%w", payments.ErrPlanExists)
	} else if !errors.Is(err, payments.ErrPlanNotFound) {
		return nil, nil, fmt.Errorf("%w", err)
	}

	frequency := input.Frequency
	if frequency == "" {
		frequency = payments.FrequencyMonthly
	}

	now := time.Now().UTC()
	plan := &payments.PaymentPlan{
		ID:              uuid.New().String(),
		LeaseID:         input.LeaseID,
		TotalCents:      input.TotalCents,
		Currency:        input.Currency,
		InstallmentNum:  input.InstallmentNum,
		Frequency:       frequency,
		FirstDueDate:    input.FirstDueDate,
		DateTimeCreated: now,
	}

	installments, err := payments.BuildInstallments(plan, now)
	if err != nil {
		return nil, nil, err
	}

	if err := s.planRepository.Create(ctx, plan, installments); err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	s.logger.Info("Created payment plan ", plan.ID, " with ", len(installments), " installments")
	return plan, installments, nil
}

func (s *paymentService) GetPlanByLeaseID(ctx context.Context, leaseID string) (*payments.PaymentPlan, []*payments.Installment, error) {
	plan, err := s.planRepository.GetByLeaseID(ctx, leaseID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	installments, err := s.planRepository.ListInstallments(ctx, plan.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	return plan, installments, nil
}

func (s *paymentService) PayInstallment(ctx context.Context, installmentID, payerID, method string) (*payments.Transaction, error) {
	installment, err := s.planRepository.GetInstallmentByID(ctx, installmentID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if installment.Status == payments.InstallmentPaid {
		return nil, fmt.Errorf("%w", payments.ErrInstallmentSettled)
	}

	plan, err := s.planRepository.GetByID(ctx, installment.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	lease, err := s.leaseRepository.GetByID(ctx, plan.LeaseID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	transaction, err := s.Charge(ctx, &payments.ChargeInput{
		LeaseID:         plan.LeaseID,
		InstallmentID:   installment.ID,
		PayerID:         payerID,
		PayeeID:         lease.LandlordID,
		TransactionType: payments.TypeRent,
		Method:          method,
		AmountCents:     installment.AmountCents,
		Currency:        plan.Currency,
		Description:     fmt.Sprintf("Installment %d of plan %s", installment.Sequence, plan.ID),
	})
	if err != nil {
		return nil, err
	}

	return s.Settle(ctx, transaction.ID, "completed")
}

func (s *paymentService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.planRepository.ListDueBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	plans := make(map[string]*payments.PaymentPlan)
	flagged := 0
	for _, installment := range due {
		installment.Status = payments.InstallmentOverdue
		if err := s.planRepository.UpdateInstallmentByID(ctx, installment); err != nil {
			return flagged, fmt.Errorf("%w", err)
		}
		flagged++

		plan, ok := plans[installment.PlanID]
		if !ok {
			plan, err = s.planRepository.GetByID(ctx, installment.PlanID)
			if err != nil {
				s.logger.Error("Failed to resolve plan for installment ", installment.ID, ": ", err)
				continue
			}
			plans[installment.PlanID] = plan
		}

		lease, err := s.leaseRepository.GetByID(ctx, plan.LeaseID)
		if err != nil {
			s.logger.Error("Failed to resolve lease for plan ", plan.ID, ": ", err)
			continue
		}
		s.remind(ctx, lease.TenantID, installment)
	}

	if flagged > 0 {
		s.logger.Info("Marked ", flagged, " installments overdue")
	}
	return flagged, nil
}

func (s *paymentService) Balance(ctx context.Context, userID string) (int64, error) {
	incoming, outgoing, err := s.transactionRepository.SumSettledByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return incoming - outgoing, nil
}

func (s *paymentService) LeaseBalance(ctx context.Context, leaseID string, now time.Time) (*payments.LeaseBalance, error) {
	plan, installments, err := s.GetPlanByLeaseID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	balance := &payments.LeaseBalance{
		LeaseID:        leaseID,
		Currency:       plan.Currency,
		PlanTotalCents: plan.TotalCents,
	}
	for _, installment := range installments {
		if installment.Status == payments.InstallmentPaid {
			balance.PaidCents += installment.AmountCents
			balance.PaidInstallments++
		} else {
			balance.OpenInstallments++
		}
		if !installment.DueDate.After(now) {
			balance.ExpectedCents += installment.AmountCents
		}
	}
	if balance.ExpectedCents > balance.PaidCents {
		balance.OutstandingCents = balance.ExpectedCents - balance.PaidCents
	}

	return balance, nil
}

func (s *paymentService) notify(ctx context.Context, userID, title, body, relatedID string) {
	if s.notifier == nil {
		return
	}
	_, err := s.notifier.Notify(ctx, &notifications.NotifyInput{
		UserID:           userID,
		NotificationType: notifications.TypePaymentUpdate,
		Title:            title,
		Body:             body,
		RelatedID:        relatedID,
	})
	if err != nil {
		s.logger.Warn("Failed to notify user ", userID, ": ", err)
	}
}

func (s *paymentService) remind(ctx context.Context, userID string, installment *payments.Installment) {
	if s.notifier == nil {
		return
	}
	_, err := s.notifier.Notify(ctx, &notifications.NotifyInput{
		UserID:           userID,
		NotificationType: notifications.TypePaymentReminder,
		Title:            "Installment overdue",
		Body:             fmt.Sprintf("Installment %d of your payment plan is overdue.", installment.Sequence),
		RelatedID:        installment.ID,
	})
	if err != nil {
		s.logger.Warn("Failed to notify user ", userID, ": ", err)
	}
}

func (s *paymentService) record(ctx context.Context, actorID, action, transactionID, detail string) {
	if s.recorder != nil {
		s.recorder.Record(ctx, &activity.RecordInput{
			UserID:   actorID,
			Action:   action,
			TargetID: transactionID,
			Detail:   detail,
		})
	}
}

func (s *paymentService) settleInstallment(ctx context.Context, installmentID string, now time.Time) error {
	installment, err := s.planRepository.GetInstallmentByID(ctx, installmentID)
	if err != nil {
		return err
	}
	installment.Status = payments.InstallmentPaid
	installment.PaidAt = &now
	return s.planRepository.UpdateInstallmentByID(ctx, installment)
}

// paymentReference builds a human-readable unique reference such as
// VH-20260131-5F2A9C01.
func paymentReference(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}
