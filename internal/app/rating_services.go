package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/ratings"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
)

// ratingService implements the RatingService interface for reviews between
// lease counterparts
type ratingService struct {
	ratingRepository ratings.RatingRepository
	leaseRepository  leases.LeaseRepository
	notifier         notifications.NotificationService
	recorder         activity.Recorder
	logger           logger.Logger
}

// NewRatingService creates a new instance of RatingService
func NewRatingService(ratingRepository ratings.RatingRepository, leaseRepository leases.LeaseRepository, notifier notifications.NotificationService, recorder activity.Recorder, logger logger.Logger) (ratings.RatingService, error) {
	return &ratingService{
		ratingRepository: ratingRepository,
		leaseRepository:  leaseRepository,
		notifier:         notifier,
		recorder:         recorder,
		logger:           logger,
	}, nil
}

func (s *ratingService) Create(ctx context.Context, input *ratings.CreateInput) (*ratings.Rating, error) {
	if input.ReviewerID == input.RevieweeID {
		return nil, fmt.Errorf("%w", ratings.ErrSelfRating)
	}

	lease, err := s.leaseRepository.GetByID(ctx, input.LeaseID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !lease.IsParty(input.ReviewerID) || !lease.IsParty(input.RevieweeID) {
		return nil, fmt.Errorf("%w", ratings.ErrNoSharedLease)
	}
	// Reviews open once the lease has gone active.
	switch lease.Status {
	case leases.StatusDraft, leases.StatusPendingTenant:
		return nil, fmt.Errorf("%w", ratings.ErrNoSharedLease)
	}

	if _, err := s.ratingRepository.GetByReviewerAndLease(ctx, input.ReviewerID, input.RevieweeID, input.LeaseID); err == nil {
		return nil, fmt.Errorf("%w", ratings.ErrAlreadyRated)
	} else if !errors.Is(err, ratings.ErrNotFound) {
		return nil, fmt.Errorf("%w", err)
	}

	rating := &ratings.Rating{
		ID:                 uuid.New().String(),
		ReviewerID:         input.ReviewerID,
		RevieweeID:         input.RevieweeID,
		LeaseID:            input.LeaseID,
		OverallScore:       input.OverallScore,
		CommunicationScore: input.CommunicationScore,
		PunctualityScore:   input.PunctualityScore,
		CareScore:          input.CareScore,
		Comment:            input.Comment,
		DateTimeCreated:    time.Now().UTC(),
	}

	if err := s.ratingRepository.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.notify(ctx, rating.RevieweeID, "New rating received", fmt.Sprintf("You received a %d/10 rating.", rating.OverallScore), rating.ID)
	if s.recorder != nil {
		s.recorder.Record(ctx, &activity.RecordInput{UserID: input.ReviewerID, Action: activity.ActionRatingCreate, TargetID: rating.ID})
	}

	s.logger.Info("Created rating with id ", rating.ID)
	return rating, nil
}

func (s *ratingService) GetByID(ctx context.Context, ratingID string) (*ratings.Rating, error) {
	rating, err := s.ratingRepository.GetByID(ctx, ratingID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return rating, nil
}

func (s *ratingService) List(ctx context.Context, query *ratings.RatingQuery) ([]*ratings.Rating, error) {
	ratingList, err := s.ratingRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return ratingList, nil
}

func (s *ratingService) Respond(ctx context.Context, ratingID, revieweeID, response string) (*ratings.Rating, error) {
	rating, err := s.ratingRepository.GetByID(ctx, ratingID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if rating.RevieweeID != revieweeID {
		return nil, fmt.Errorf("%w", ratings.ErrNotReviewee)
	}
	if rating.Response != "" {
		return nil, fmt.Errorf("%w", ratings.ErrAlreadyResponded)
	}

	now := time.Now().UTC()
	rating.Response = response
	rating.RespondedAt = &now
	if err := s.ratingRepository.UpdateByID(ctx, rating); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.notify(ctx, rating.ReviewerID, "Rating response", "The user you rated responded to your review.", rating.ID)
	return rating, nil
}

func (s *ratingService) Summarize(ctx context.Context, userID string) (*ratings.Summary, error) {
	summary, err := s.ratingRepository.Summarize(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return summary, nil
}

func (s *ratingService) Delete(ctx context.Context, ratingID string) error {
	if err := s.ratingRepository.DeleteByID(ctx, ratingID); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *ratingService) notify(ctx context.Context, userID, title, body, ratingID string) {
	if s.notifier == nil {
		return
	}
	_, err := s.notifier.Notify(ctx, &notifications.NotifyInput{
		UserID:           userID,
		NotificationType: notifications.TypeRatingReceived,
		Title:            title,
		Body:             body,
		RelatedID:        ratingID,
	})
	if err != nil {
		s.logger.Warn("Failed to notify user ", userID, ": ", err)
	}
}
