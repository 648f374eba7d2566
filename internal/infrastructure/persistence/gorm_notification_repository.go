package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormNotificationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormNotificationRepository creates a new GORM-based NotificationRepository implementation
func NewGormNotificationRepository(db *gorm.DB, logger logger.Logger) (notifications.NotificationRepository, error) {
	return &gormNotificationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormNotificationRepository) Create(ctx context.Context, notification *notifications.Notification) error {
	// Validate domain entity (business rules)
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.NotificationModel{}
	model.FromDomain(notification)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *gormNotificationRepository) GetByID(ctx context.Context, notificationID string) (*notifications.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", notificationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification with ID %s: %w", notificationID, notifications.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch notification: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormNotificationRepository) List(ctx context.Context, query *notifications.NotificationQuery) ([]*notifications.Notification, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.NotificationModel
	dbQuery := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ?", query.UserID).
		Order("date_time_created desc")

	if query.NotificationType != "" {
		dbQuery = dbQuery.Where("notification_type = ?", query.NotificationType)
	}
	if query.UnreadOnly {
		dbQuery = dbQuery.Where("read_at IS NULL")
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	domainList := make([]*notifications.Notification, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormNotificationRepository) UpdateByID(ctx context.Context, notification *notifications.Notification) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.NotificationModel{}
	model.FromDomain(notification)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	return nil
}

func (r *gormNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}

	return int(result.RowsAffected), nil
}

func (r *gormNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
