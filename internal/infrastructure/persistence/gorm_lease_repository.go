package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

// liveLeaseStatuses are the statuses under which a lease blocks the property.
var liveLeaseStatuses = []string{
	leases.StatusActive,
	leases.StatusPendingTenant,
}

type gormLeaseRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormLeaseRepository creates a new GORM-based LeaseRepository implementation
func NewGormLeaseRepository(db *gorm.DB, logger logger.Logger) (leases.LeaseRepository, error) {
	return &gormLeaseRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormLeaseRepository) Create(ctx context.Context, lease *leases.Lease) error {
	// Validate domain entity (business rules)
	if err := lease.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.LeaseModel{}
	model.FromDomain(lease)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}

	r.logger.Info("Created lease with id ", lease.ID)
	return nil
}

func (r *gormLeaseRepository) GetByID(ctx context.Context, leaseID string) (*leases.Lease, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).Where("id = ?", leaseID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lease with ID %s: %w", leaseID, leases.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch lease: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormLeaseRepository) List(ctx context.Context, query *leases.LeaseQuery) ([]*leases.Lease, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.LeaseModel
	dbQuery := r.db.WithContext(ctx).Model(&models.LeaseModel{})

	// Apply filters
	if query.PropertyID != "" {
		dbQuery = dbQuery.Where("property_id = ?", query.PropertyID)
	}
	if query.LandlordID != "" {
		dbQuery = dbQuery.Where("landlord_id = ?", query.LandlordID)
	}
	if query.TenantID != "" {
		dbQuery = dbQuery.Where("tenant_id = ?", query.TenantID)
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
		return nil, fmt.Errorf("failed to fetch leases: %w", err)
	}

	// Convert to domain models
	domainList := make([]*leases.Lease, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormLeaseRepository) GetLiveByPropertyID(ctx context.Context, propertyID string) (*leases.Lease, error) {
	var model models.LeaseModel
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Where("status IN ?", liveLeaseStatuses).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("live lease for property %s: %w", propertyID, leases.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch lease: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormLeaseRepository) UpdateByID(ctx context.Context, lease *leases.Lease) error {
	if err := lease.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.LeaseModel{}
	model.FromDomain(lease)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update lease: %w", err)
	}

	r.logger.Info("Updated lease with id ", lease.ID)
	return nil
}

func (r *gormLeaseRepository) ListEnded(ctx context.Context, now time.Time) ([]*leases.Lease, error) {
	var modelList []*models.LeaseModel
	err := r.db.WithContext(ctx).
		Where("end_date < ?", now).
		Where("status = ?", leases.StatusActive).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ended leases: %w", err)
	}

	domainList := make([]*leases.Lease, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
