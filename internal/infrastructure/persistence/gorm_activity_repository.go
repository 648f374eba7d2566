package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormActivityRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormActivityRepository creates a new GORM-based EntryRepository implementation
func NewGormActivityRepository(db *gorm.DB, logger logger.Logger) (activity.EntryRepository, error) {
	return &gormActivityRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormActivityRepository) Create(ctx context.Context, entry *activity.Entry) error {
	// Validate domain entity (business rules)
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.ActivityModel{}
	model.FromDomain(entry)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}

	return nil
}

func (r *gormActivityRepository) List(ctx context.Context, query *activity.EntryQuery) ([]*activity.Entry, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.ActivityModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ActivityModel{})

	// Apply filters. Action matches as a prefix so "payment" covers both
	// payment_charge and payment_settle.
	if query.UserID != "" {
		dbQuery = dbQuery.Where("user_id = ?", query.UserID)
	}
	if query.Action != "" {
		dbQuery = dbQuery.Where("action LIKE ?", query.Action+"%")
	}
	if query.TargetID != "" {
		dbQuery = dbQuery.Where("target_id = ?", query.TargetID)
	}
	if query.From != nil {
		dbQuery = dbQuery.Where("date_time_created >= ?", *query.From)
	}
	if query.To != nil {
		dbQuery = dbQuery.Where("date_time_created < ?", *query.To)
	}

	// Sorting
	order := query.SortOrder
	if order == "" {
		order = "desc"
	}
	dbQuery = dbQuery.Order(fmt.Sprintf("date_time_created %s", order))

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch activity entries: %w", err)
	}

	// Convert to domain models
	domainList := make([]*activity.Entry, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormActivityRepository) CountByAction(ctx context.Context, from, to time.Time) ([]activity.ActionCount, error) {
	var counts []activity.ActionCount
	err := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("date_time_created >= ? AND date_time_created < ?", from, to).
		Select("action, COUNT(*) AS count").
		Group("action").
		Order("count desc").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count activity by action: %w", err)
	}

	return counts, nil
}

func (r *gormActivityRepository) CountByDay(ctx context.Context, from, to time.Time) ([]activity.DayCount, error) {
	// SQLite and Postgres spell date truncation differently.
	dayExpr := "to_char(date_time_created, 'YYYY-MM-DD')"
	if r.db.Dialector.Name() == "sqlite" {
		dayExpr = "strftime('%Y-%m-%d', date_time_created)"
	}

	var counts []activity.DayCount
	err := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("date_time_created >= ? AND date_time_created < ?", from, to).
		Select(dayExpr + " AS day, COUNT(*) AS count").
		Group("day").
		Order("day asc").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count activity by day: %w", err)
	}

	return counts, nil
}

func (r *gormActivityRepository) CountTopActors(ctx context.Context, from, to time.Time, limit int) ([]activity.ActorCount, error) {
	var counts []activity.ActorCount
	err := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("date_time_created >= ? AND date_time_created < ?", from, to).
		Where("user_id <> ''").
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Order("count desc").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count top actors: %w", err)
	}

	return counts, nil
}

func (r *gormActivityRepository) CountTotals(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var entries, users int64

	err := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("date_time_created >= ? AND date_time_created < ?", from, to).
		Count(&entries).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	err = r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("date_time_created >= ? AND date_time_created < ?", from, to).
		Where("user_id <> ''").
		Distinct("user_id").
		Count(&users).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count active users: %w", err)
	}

	return entries, users, nil
}

func (r *gormActivityRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("date_time_created < ?", cutoff).
		Delete(&models.ActivityModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge activity entries: %w", result.Error)
	}

	r.logger.Info("Purged ", result.RowsAffected, " activity entries created before ", cutoff)
	return result.RowsAffected, nil
}
