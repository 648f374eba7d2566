package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/matching"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
)

// matchRequestTTL is how long a request may sit in the workflow before the
// expiry sweep closes it.
const matchRequestTTL = 30 * 24 * time.Hour

// Parties allowed to drive a transition.
const (
	partyLandlord = "landlord"
	partyTenant   = "tenant"
)

// matchService implements the MatchService interface for the tenant-landlord
// match workflow
type matchService struct {
	matchRepository    matching.MatchRepository
	propertyRepository properties.PropertyRepository
	notifier           notifications.NotificationService
	recorder           activity.Recorder
	logger             logger.Logger
}

// NewMatchService creates a new instance of MatchService
func NewMatchService(matchRepository matching.MatchRepository, propertyRepository properties.PropertyRepository, notifier notifications.NotificationService, recorder activity.Recorder, logger logger.Logger) (matching.MatchService, error) {
	return &matchService{
		matchRepository:    matchRepository,
		propertyRepository: propertyRepository,
		notifier:           notifier,
		recorder:           recorder,
		logger:             logger,
	}, nil
}

func (s *matchService) Create(ctx context.Context, input *matching.CreateInput) (*matching.MatchRequest, error) {
	property, err := s.propertyRepository.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if property.LandlordID == input.TenantID {
		return nil, fmt.Errorf("%w", matching.ErrOwnProperty)
	}
	if property.Status != properties.StatusAvailable {
		return nil, fmt.Errorf("%w", matching.ErrPropertyUnavailable)
	}

	if _, err := s.matchRepository.GetLiveByTenantAndProperty(ctx, input.TenantID, input.PropertyID); err == nil {
		return nil, fmt.Errorf("%w", matching.ErrDuplicateRequest)
	} else if !errors.Is(err, matching.ErrNotFound) {
		return nil, fmt.Errorf("%w", err)
	}

	now := time.Now().UTC()
	match := &matching.MatchRequest{
		ID:                 uuid.New().String(),
		PropertyID:         input.PropertyID,
		TenantID:           input.TenantID,
		LandlordID:         property.LandlordID,
		Status:             matching.StatusPending,
		Message:            input.Message,
		MonthlyIncomeCents: input.MonthlyIncomeCents,
		Employment:         input.Employment,
		ExpiresAt:          now.Add(matchRequestTTL),
		DateTimeCreated:    now,
	}

	if err := s.matchRepository.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.notify(ctx, match.LandlordID, "New match request", "A tenant requested a match on your property.", match.ID)
	s.record(ctx, input.TenantID, match.ID, matching.StatusPending)
	s.logger.Info("Created match request with id ", match.ID)
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, matchID string) (*matching.MatchRequest, error) {
	match, err := s.matchRepository.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return match, nil
}

func (s *matchService) List(ctx context.Context, query *matching.MatchQuery) ([]*matching.MatchRequest, error) {
	matches, err := s.matchRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return matches, nil
}

func (s *matchService) Accept(ctx context.Context, matchID, landlordID string) (*matching.MatchRequest, error) {
	return s.advance(ctx, matchID, landlordID, partyLandlord, matching.StatusAccepted, nil)
}

func (s *matchService) Reject(ctx context.Context, matchID, landlordID string) (*matching.MatchRequest, error) {
	return s.advance(ctx, matchID, landlordID, partyLandlord, matching.StatusRejected, nil)
}

func (s *matchService) Cancel(ctx context.Context, matchID, tenantID string) (*matching.MatchRequest, error) {
	return s.advance(ctx, matchID, tenantID, partyTenant, matching.StatusCancelled, nil)
}

func (s *matchService) ScheduleVisit(ctx context.Context, matchID, landlordID string, visitAt time.Time) (*matching.MatchRequest, error) {
	return s.advance(ctx, matchID, landlordID, partyLandlord, matching.StatusVisitScheduled, func(match *matching.MatchRequest, _ time.Time) {
		match.VisitScheduledAt = &visitAt
	})
}

func (s *matchService) CompleteVisit(ctx context.Context, matchID, landlordID string) (*matching.MatchRequest, error) {
	return s.advance(ctx, matchID, landlordID, partyLandlord, matching.StatusVisitCompleted, func(match *matching.MatchRequest, now time.Time) {
		match.VisitCompletedAt = &now
	})
}

func (s *matchService) SubmitDocuments(ctx context.Context, matchID, tenantID string) (*matching.MatchRequest, error) {
	return s.advance(ctx, matchID, tenantID, partyTenant, matching.StatusDocumentsSubmitted, func(match *matching.MatchRequest, now time.Time) {
		match.DocumentsSubmittedAt = &now
	})
}

func (s *matchService) ApproveDocuments(ctx context.Context, matchID, landlordID string) (*matching.MatchRequest, error) {
	return s.advance(ctx, matchID, landlordID, partyLandlord, matching.StatusDocumentsApproved, func(match *matching.MatchRequest, now time.Time) {
		match.DocumentsApprovedAt = &now
	})
}

func (s *matchService) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	stale, err := s.matchRepository.ListExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	expired := 0
	for _, match := range stale {
		if err := matching.Transition(match.Status, matching.StatusExpired); err != nil {
			continue
		}
		match.Status = matching.StatusExpired
		match.DateTimeUpdated = now
		if err := s.matchRepository.UpdateByID(ctx, match); err != nil {
			return expired, fmt.Errorf("%w", err)
		}
		expired++

		s.notify(ctx, match.TenantID, "Match request expired", "Your match request expired without completing the workflow.", match.ID)
	}

	if expired > 0 {
		s.logger.Info("Expired ", expired, " stale match requests")
	}
	return expired, nil
}

// advance moves the request to the given status after checking that actorID
// holds the required party role. The counterpart is notified on success.
func (s *matchService) advance(ctx context.Context, matchID, actorID, party, to string, mutate func(match *matching.MatchRequest, now time.Time)) (*matching.MatchRequest, error) {
	match, err := s.matchRepository.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	switch party {
	case partyLandlord:
		if match.LandlordID != actorID {
			return nil, fmt.Errorf("%w", matching.ErrNotParty)
		}
	case partyTenant:
		if match.TenantID != actorID {
			return nil, fmt.Errorf("%w", matching.ErrNotParty)
		}
	}

	if err := matching.Transition(match.Status, to); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	match.Status = to
	match.DateTimeUpdated = now
	if mutate != nil {
		mutate(match, now)
	}

	if err := s.matchRepository.UpdateByID(ctx, match); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	recipient := match.TenantID
	if party == partyTenant {
		recipient = match.LandlordID
	}
	s.notify(ctx, recipient, "Match request update", fmt.Sprintf("The match request moved to %s.", strings.ReplaceAll(to, "_", " ")), match.ID)
	s.record(ctx, actorID, match.ID, to)

	return match, nil
}

func (s *matchService) notify(ctx context.Context, userID, title, body, matchID string) {
	if s.notifier == nil {
		return
	}
	_, err := s.notifier.Notify(ctx, &notifications.NotifyInput{
		UserID:           userID,
		NotificationType: notifications.TypeMatchUpdate,
		Title:            title,
		Body:             body,
		RelatedID:        matchID,
	})
	if err != nil {
		s.logger.Warn("Failed to notify user ", userID, ": ", err)
	}
}

func (s *matchService) record(ctx context.Context, actorID, matchID, status string) {
	if s.recorder != nil {
		s.recorder.Record(ctx, &activity.RecordInput{
			UserID:   actorID,
			Action:   activity.ActionMatchUpdate,
			TargetID: matchID,
			Detail:   status,
		})
	}
}
