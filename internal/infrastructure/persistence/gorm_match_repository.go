package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/matching"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

// terminalStatuses are the match statuses that close a request for good.
var terminalStatuses = []string{
	matching.StatusContractCreated,
	matching.StatusRejected,
	matching.StatusCancelled,
	matching.StatusExpired,
}

type gormMatchRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMatchRepository creates a new GORM-based MatchRepository implementation
func NewGormMatchRepository(db *gorm.DB, logger logger.Logger) (matching.MatchRepository, error) {
	return &gormMatchRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMatchRepository) Create(ctx context.Context, match *matching.MatchRequest) error {
	// Validate domain entity (business rules)
	if err := match.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.MatchModel{}
	model.FromDomain(match)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create match request: %w", err)
	}

	r.logger.Info("Created match request with id ", match.ID)
	return nil
}

func (r *gormMatchRepository) GetByID(ctx context.Context, matchID string) (*matching.MatchRequest, error) {
	var model models.MatchModel
	if err := r.db.WithContext(ctx).Where("id = ?", matchID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("match request with ID %s: %w", matchID, matching.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch match request: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormMatchRepository) List(ctx context.Context, query *matching.MatchQuery) ([]*matching.MatchRequest, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.MatchModel
	dbQuery := r.db.WithContext(ctx).Model(&models.MatchModel{})

	// Apply filters
	if query.PropertyID != "" {
		dbQuery = dbQuery.Where("property_id = ?", query.PropertyID)
	}
	if query.TenantID != "" {
		dbQuery = dbQuery.Where("tenant_id = ?", query.TenantID)
	}
	if query.LandlordID != "" {
		dbQuery = dbQuery.Where("landlord_id = ?", query.LandlordID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}

	// Sorting
	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch match requests: %w", err)
	}

	// Convert to domain models
	domainList := make([]*matching.MatchRequest, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormMatchRepository) GetLiveByTenantAndProperty(ctx context.Context, tenantID, propertyID string) (*matching.MatchRequest, error) {
	var model models.MatchModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Where("status NOT IN ?", terminalStatuses).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("live match request for tenant %s on property %s: %w", tenantID, propertyID, matching.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch match request: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormMatchRepository) UpdateByID(ctx context.Context, match *matching.MatchRequest) error {
	if err := match.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MatchModel{}
	model.FromDomain(match)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update match request: %w", err)
	}

	r.logger.Info("Updated match request with id ", match.ID)
	return nil
}

func (r *gormMatchRepository) ListExpired(ctx context.Context, now time.Time) ([]*matching.MatchRequest, error) {
	var modelList []*models.MatchModel
	err := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Where("status NOT IN ?", terminalStatuses).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expired match requests: %w", err)
	}

	domainList := make([]*matching.MatchRequest, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
