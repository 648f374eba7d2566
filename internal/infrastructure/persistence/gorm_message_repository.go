package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormMessageRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMessageRepository creates a new GORM-based MessageRepository implementation
func NewGormMessageRepository(db *gorm.DB, logger logger.Logger) (messaging.MessageRepository, error) {
	return &gormMessageRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMessageRepository) Create(ctx context.Context, message *messaging.Message) error {
	// Validate domain entity (business rules)
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.MessageModel{}
	model.FromDomain(message)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *gormMessageRepository) List(ctx context.Context, query *messaging.MessageQuery) ([]*messaging.Message, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.MessageModel
	dbQuery := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Where("thread_id = ?", query.ThreadID).
		Order("date_time_created asc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	domainList := make([]*messaging.Message, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormMessageRepository) MarkThreadRead(ctx context.Context, threadID, userID string) (int, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Where("thread_id = ? AND sender_id <> ? AND read_at IS NULL", threadID, userID).
		Update("read_at", now)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark thread read: %w", result.Error)
	}

	return int(result.RowsAffected), nil
}

func (r *gormMessageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Joins("JOIN message_threads ON message_threads.id = messages.thread_id").
		Where("message_threads.initiator_id = ? OR message_threads.recipient_id = ?", userID, userID).
		Where("messages.sender_id <> ? AND messages.read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}
