package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/matching"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	mail "github.com/wilsonA2000/verihome/internal/infrastructure/email"
	"github.com/wilsonA2000/verihome/internal/infrastructure/tasks"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
)

// leaseService implements the LeaseService interface for rental contracts
// and the two-party signature flow
type leaseService struct {
	leaseRepository     leases.LeaseRepository
	signatureRepository leases.SignatureRepository
	propertyService     properties.PropertyService
	matchRepository     matching.MatchRepository
	userRepository      accounts.UserRepository
	notifier            notifications.NotificationService
	recorder            activity.Recorder
	queue               tasks.Enqueuer
	logger              logger.Logger
}

// NewLeaseService creates a new instance of LeaseService. The notifier,
// recorder and queue may be nil, which disables the matching side effects.
func NewLeaseService(leaseRepository leases.LeaseRepository, signatureRepository leases.SignatureRepository, propertyService properties.PropertyService, matchRepository matching.MatchRepository, userRepository accounts.UserRepository, notifier notifications.NotificationService, recorder activity.Recorder, queue tasks.Enqueuer, logger logger.Logger) (leases.LeaseService, error) {
	return &leaseService{
		leaseRepository:     leaseRepository,
		signatureRepository: signatureRepository,
		propertyService:     propertyService,
		matchRepository:     matchRepository,
		userRepository:      userRepository,
		notifier:            notifier,
		recorder:            recorder,
		queue:               queue,
		logger:              logger,
	}, nil
}

func (s *leaseService) Create(ctx context.Context, input *leases.CreateInput) (*leases.Lease, error) {
	property, err := s.propertyService.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if property.LandlordID != input.LandlordID {
		return nil, fmt.Errorf("%w", properties.ErrNotOwner)
	}
	if input.TenantID == input.LandlordID {
		return nil, fmt.Errorf("landlord and tenant must be different users")
	}

	if _, err := s.leaseRepository.GetLiveByPropertyID(ctx, input.PropertyID); err == nil {
		return nil, fmt.Errorf("%w", leases.ErrActiveLeaseExists)
	} else if !errors.Is(err, leases.ErrNotFound) {
		return nil, fmt.Errorf("%w", err)
	}

	// When the lease closes a match request, the request must be ready for
	// the contract stage before anything is written.
	var match *matching.MatchRequest
	if input.MatchID != "" {
		match, err = s.matchRepository.GetByID(ctx, input.MatchID)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if match.PropertyID != input.PropertyID || match.TenantID != input.TenantID {
			return nil, fmt.Errorf("match %s does not cover this property and tenant", match.ID)
		}
		if err := matching.Transition(match.Status, matching.StatusContractCreated); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	lease := &leases.Lease{
		ID:              uuid.New().String(),
		PropertyID:      input.PropertyID,
		LandlordID:      input.LandlordID,
		TenantID:        input.TenantID,
		MatchID:         input.MatchID,
		Status:          leases.StatusDraft,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		RentCents:       input.RentCents,
		DepositCents:    input.DepositCents,
		Currency:        input.Currency,
		PaymentDay:      input.PaymentDay,
		Terms:           input.Terms,
		DateTimeCreated: now,
	}

	if err := s.leaseRepository.Create(ctx, lease); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if match != nil {
		match.Status = matching.StatusContractCreated
		match.DateTimeUpdated = now
		if err := s.matchRepository.UpdateByID(ctx, match); err != nil {
			s.logger.Error("Failed to close match ", match.ID, " after lease creation: ", err)
		}
	}

	s.notify(ctx, lease.TenantID, "New lease drafted", "A lease is ready for the signature flow.", lease.ID)
	s.record(ctx, input.LandlordID, activity.ActionLeaseCreate, lease.ID, "")
	s.logger.Info("Created lease with id ", lease.ID)
	return lease, nil
}

func (s *leaseService) GetByID(ctx context.Context, leaseID string) (*leases.Lease, error) {
	lease, err := s.leaseRepository.GetByID(ctx, leaseID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return lease, nil
}

func (s *leaseService) List(ctx context.Context, query *leases.LeaseQuery) ([]*leases.Lease, error) {
	leaseList, err := s.leaseRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return leaseList, nil
}

func (s *leaseService) Amend(ctx context.Context, leaseID, landlordID, terms string) (*leases.Lease, error) {
	lease, err := s.leaseRepository.GetByID(ctx, leaseID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if lease.LandlordID != landlordID {
		return nil, fmt.Errorf("%w", leases.ErrNotParty)
	}
	// Once a signature exists the terms are frozen.
	if lease.Status != leases.StatusDraft {
		return nil, fmt.Errorf("%w", leases.ErrNotDraft)
	}

	lease.Terms = terms
	lease.DateTimeUpdated = time.Now().UTC()
	if err := s.leaseRepository.UpdateByID(ctx, lease); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.notify(ctx, lease.TenantID, "Lease terms updated", "The landlord amended the draft lease terms.", lease.ID)
	s.record(ctx, landlordID, activity.ActionLeaseAmend, lease.ID, "")
	s.logger.Info("Amended lease with id ", lease.ID)
	return lease, nil
}

func (s *leaseService) SignStep(ctx context.Context, input *leases.SignStepInput) (*leases.SignatureRecord, error) {
	lease, err := s.leaseRepository.GetByID(ctx, input.LeaseID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var role string
	switch input.SignerID {
	case lease.LandlordID:
		role = accounts.RoleLandlord
	case lease.TenantID:
		role = accounts.RoleTenant
	default:
		return nil, fmt.Errorf("%w", leases.ErrNotParty)
	}

	// The landlord signs the draft; the tenant signs once the lease is
	// awaiting their signature.
	switch lease.Status {
	case leases.StatusDraft:
		if role != accounts.RoleLandlord {
			return nil, fmt.Errorf("%w", leases.ErrNotSignable)
		}
	case leases.StatusPendingTenant:
		if role != accounts.RoleTenant {
			return nil, fmt.Errorf("%w", leases.ErrNotSignable)
		}
	default:
		return nil, fmt.Errorf("%w", leases.ErrNotSignable)
	}

	fresh := false
	record, err := s.signatureRepository.GetByLeaseAndSigner(ctx, input.LeaseID, input.SignerID)
	if err != nil {
		if !errors.Is(err, leases.ErrNotFound) {
			return nil, fmt.Errorf("%w", err)
		}
		fresh = true
		record = &leases.SignatureRecord{
			ID:              uuid.New().String(),
			LeaseID:         input.LeaseID,
			SignerID:        input.SignerID,
			Role:            role,
			DateTimeCreated: time.Now().UTC(),
		}
	}

	now := time.Now().UTC()
	switch input.Step {
	case leases.StepDocument:
		err = record.ApplyDocumentStep(input.Confidence)
	case leases.StepFace:
		err = record.ApplyFaceStep(input.Confidence)
	case leases.StepSignature:
		err = record.ApplySignatureStep(input.ImageURL, now)
	default:
		return nil, fmt.Errorf("unknown signature step %q", input.Step)
	}
	if err != nil {
		return nil, err
	}

	record.DateTimeUpdated = now
	if fresh {
		err = s.signatureRepository.Create(ctx, record)
	} else {
		err = s.signatureRepository.UpdateByID(ctx, record)
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.record(ctx, input.SignerID, activity.ActionLeaseSign, lease.ID, input.Step)

	if record.Completed() {
		if err := s.advanceSigned(ctx, lease, role, now); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// advanceSigned moves the lease forward after one party completed the full
// signature flow: the landlord hands it to the tenant, the tenant activates it.
func (s *leaseService) advanceSigned(ctx context.Context, lease *leases.Lease, role string, now time.Time) error {
	lease.DateTimeUpdated = now

	switch role {
	case accounts.RoleLandlord:
		lease.LandlordSignedAt = &now
		lease.Status = leases.StatusPendingTenant
		if err := s.leaseRepository.UpdateByID(ctx, lease); err != nil {
			return fmt.Errorf("%w", err)
		}
		s.notify(ctx, lease.TenantID, "Lease awaiting your signature", "The landlord signed the lease. Complete your signature flow to activate it.", lease.ID)

	case accounts.RoleTenant:
		lease.TenantSignedAt = &now
		lease.Status = leases.StatusActive
		if err := s.leaseRepository.UpdateByID(ctx, lease); err != nil {
			return fmt.Errorf("%w", err)
		}
		if err := s.propertyService.SetStatus(ctx, lease.PropertyID, properties.StatusRented); err != nil {
			s.logger.Error("Failed to mark property ", lease.PropertyID, " rented: ", err)
		}
		s.notify(ctx, lease.LandlordID, "Lease active", "Both parties signed. The lease is now active.", lease.ID)
		s.notify(ctx, lease.TenantID, "Lease active", "Both parties signed. The lease is now active.", lease.ID)
		s.sendLeaseEmails(ctx, lease, "Your lease is active", "Both parties signed. The lease is now active.")
		s.logger.Info("Activated lease with id ", lease.ID)
	}

	return nil
}

func (s *leaseService) GetSignature(ctx context.Context, leaseID, signerID string) (*leases.SignatureRecord, error) {
	record, err := s.signatureRepository.GetByLeaseAndSigner(ctx, leaseID, signerID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return record, nil
}

func (s *leaseService) Terminate(ctx context.Context, leaseID, actorID, reason string) (*leases.Lease, error) {
	lease, err := s.leaseRepository.GetByID(ctx, leaseID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !lease.IsParty(actorID) {
		return nil, fmt.Errorf("%w", leases.ErrNotParty)
	}
	if lease.Status != leases.StatusActive {
		return nil, fmt.Errorf("%w", leases.ErrNotActive)
	}

	now := time.Now().UTC()
	lease.Status = leases.StatusTerminated
	lease.TerminatedAt = &now
	lease.TerminationReason = reason
	lease.DateTimeUpdated = now
	if err := s.leaseRepository.UpdateByID(ctx, lease); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if err := s.propertyService.SetStatus(ctx, lease.PropertyID, properties.StatusAvailable); err != nil {
		s.logger.Error("Failed to release property ", lease.PropertyID, ": ", err)
	}

	other := lease.TenantID
	if actorID == lease.TenantID {
		other = lease.LandlordID
	}
	s.notify(ctx, other, "Lease terminated", "The lease was terminated before its end date.", lease.ID)
	s.record(ctx, actorID, activity.ActionLeaseTerminate, lease.ID, reason)
	s.logger.Info("Terminated lease with id ", lease.ID)
	return lease, nil
}

func (s *leaseService) ExpireFinished(ctx context.Context, now time.Time) (int, error) {
	ended, err := s.leaseRepository.ListEnded(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	expired := 0
	for _, lease := range ended {
		lease.Status = leases.StatusExpired
		lease.DateTimeUpdated = now
		if err := s.leaseRepository.UpdateByID(ctx, lease); err != nil {
			return expired, fmt.Errorf("%w", err)
		}
		expired++

		if err := s.propertyService.SetStatus(ctx, lease.PropertyID, properties.StatusAvailable); err != nil {
			s.logger.Error("Failed to release property ", lease.PropertyID, ": ", err)
		}
		s.notify(ctx, lease.TenantID, "Lease ended", "The lease reached its end date and is now expired.", lease.ID)
		s.notify(ctx, lease.LandlordID, "Lease ended", "The lease reached its end date and is now expired.", lease.ID)
	}

	if expired > 0 {
		s.logger.Info("Expired ", expired, " finished leases")
	}
	return expired, nil
}

func (s *leaseService) notify(ctx context.Context, userID, title, body, leaseID string) {
	if s.notifier == nil {
		return
	}
	_, err := s.notifier.Notify(ctx, &notifications.NotifyInput{
		UserID:           userID,
		NotificationType: notifications.TypeLeaseUpdate,
		Title:            title,
		Body:             body,
		RelatedID:        leaseID,
	})
	if err != nil {
		s.logger.Warn("Failed to notify user ", userID, ": ", err)
	}
}

func (s *leaseService) record(ctx context.Context, actorID, action, leaseID, detail string) {
	if s.recorder != nil {
		s.recorder.Record(ctx, &activity.RecordInput{
			UserID:   actorID,
			Action:   action,
			TargetID: leaseID,
			Detail:   detail,
		})
	}
}

func (s *leaseService) sendLeaseEmails(ctx context.Context, lease *leases.Lease, subject, body string) {
	if s.queue == nil {
		return
	}
	for _, userID := range []string{lease.LandlordID, lease.TenantID} {
		user, err := s.userRepository.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn("Failed to resolve user ", userID, " for lease email: ", err)
			continue
		}
		s.queue.Enqueue(tasks.Task{
			Kind: tasks.KindEmailDelivery,
			Payload: &mail.Message{
				To:      user.Email,
				Subject: subject,
				Body:    fmt.Sprintf("Hi %s,\n\n%s", user.FirstName, body),
			},
		})
	}
}
