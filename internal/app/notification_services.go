package app

import (
	"context"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
)

// notificationService implements the NotificationService interface for
// in-app notifications
type notificationService struct {
	notificationRepository notifications.NotificationRepository
	broadcaster            notifications.Broadcaster
	logger                 logger.Logger
}

// NewNotificationService creates a new instance of NotificationService.
// A nil broadcaster disables live pushes; notifications are still stored.
func NewNotificationService(notificationRepository notifications.NotificationRepository, broadcaster notifications.Broadcaster, logger logger.Logger) (notifications.NotificationService, error) {
	return &notificationService{
		notificationRepository: notificationRepository,
		broadcaster:            broadcaster,
		logger:                 logger,
	}, nil
}

func (s *notificationService) Notify(ctx context.Context, input *notifications.NotifyInput) (*notifications.Notification, error) {
	notification := &notifications.Notification{
		ID:               uuid.New().String(),
		UserID:           input.UserID,
		NotificationType: input.NotificationType,
		Title:            input.Title,
		Body:             input.Body,
		RelatedID:        input.RelatedID,
		DateTimeCreated:  time.Now().UTC(),
	}

	if err := s.notificationRepository.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.Push(notification.UserID, notification)
	}

	return notification, nil
}

func (s *notificationService) List(ctx context.Context, query *notifications.NotificationQuery) ([]*notifications.Notification, error) {
	notificationList, err := s.notificationRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return notificationList, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	notification, err := s.notificationRepository.GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	// Treat other users' notifications as missing so IDs cannot be probed.
	if notification.UserID != userID {
		return fmt.Errorf("notification with ID %s: %w", notificationID, notifications.ErrNotFound)
	}
	if notification.ReadAt != nil {
		return nil
	}

	now := time.Now().UTC()
	notification.ReadAt = &now
	if err := s.notificationRepository.UpdateByID(ctx, notification); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	updated, err := s.notificationRepository.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	if updated > 0 {
		s.logger.Info("Marked ", updated, " notifications read for user ", userID)
	}
	return updated, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.notificationRepository.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return count, nil
}
