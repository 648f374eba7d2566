package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormThreadRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormThreadRepository creates a new GORM-based ThreadRepository implementation
func NewGormThreadRepository(db *gorm.DB, logger logger.Logger) (messaging.ThreadRepository, error) {
	return &gormThreadRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormThreadRepository) Create(ctx context.Context, thread *messaging.Thread) error {
	// Validate domain entity (business rules)
	if err := thread.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.ThreadModel{}
	model.FromDomain(thread)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create thread: %w", err)
	}

	r.logger.Info("Created message thread with id ", thread.ID)
	return nil
}

func (r *gormThreadRepository) GetByID(ctx context.Context, threadID string) (*messaging.Thread, error) {
	var model models.ThreadModel
	if err := r.db.WithContext(ctx).Where("id = ?", threadID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("thread with ID %s: %w", threadID, messaging.ErrThreadNotFound)
		}
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormThreadRepository) GetByParticipants(ctx context.Context, userA, userB, propertyID string) (*messaging.Thread, error) {
	var model models.ThreadModel
	err := r.db.WithContext(ctx).
		Where("(initiator_id = ? AND recipient_id = ?) OR (initiator_id = ? AND recipient_id = ?)", userA, userB, userB, userA).
		Where("property_id = ?", propertyID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("thread between %s and %s: %w", userA, userB, messaging.ErrThreadNotFound)
		}
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormThreadRepository) List(ctx context.Context, query *messaging.ThreadQuery) ([]*messaging.Thread, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.ThreadModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ThreadModel{}).
		Where("initiator_id = ? OR recipient_id = ?", query.UserID, query.UserID)

	if query.PropertyID != "" {
		dbQuery = dbQuery.Where("property_id = ?", query.PropertyID)
	}

	// Most recently active conversations first
	dbQuery = dbQuery.Order("last_message_at desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}

	domainList := make([]*messaging.Thread, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormThreadRepository) UpdateByID(ctx context.Context, thread *messaging.Thread) error {
	if err := thread.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ThreadModel{}
	model.FromDomain(thread)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update thread: %w", err)
	}

	return nil
}
