package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPropertyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPropertyRepository creates a new GORM-based PropertyRepository implementation
func NewGormPropertyRepository(db *gorm.DB, logger logger.Logger) (properties.PropertyRepository, error) {
	return &gormPropertyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPropertyRepository) Create(ctx context.Context, property *properties.Property) error {
	// Validate domain entity (business rules)
	if err := property.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.PropertyModel{}
	model.FromDomain(property)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	r.logger.Info("Created property with id ", property.ID)
	return nil
}

func (r *gormPropertyRepository) GetByID(ctx context.Context, propertyID string) (*properties.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", propertyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("property with ID %s: %w", propertyID, properties.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPropertyRepository) List(ctx context.Context, query *properties.PropertyQuery) ([]*properties.Property, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.PropertyModel
	dbQuery := r.db.WithContext(ctx).Model(&models.PropertyModel{})

	// Apply filters
	if query.LandlordID != "" {
		dbQuery = dbQuery.Where("landlord_id = ?", query.LandlordID)
	}
	if query.City != "" {
		dbQuery = dbQuery.Where("city = ?", query.City)
	}
	if query.PropertyType != "" {
		dbQuery = dbQuery.Where("property_type = ?", query.PropertyType)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.MinPriceCents > 0 {
		dbQuery = dbQuery.Where("rent_price_cents >= ?", query.MinPriceCents)
	}
	if query.MaxPriceCents > 0 {
		dbQuery = dbQuery.Where("rent_price_cents <= ?", query.MaxPriceCents)
	}
	if query.MinBedrooms > 0 {
		dbQuery = dbQuery.Where("bedrooms >= ?", query.MinBedrooms)
	}
	if query.MinBathrooms > 0 {
		dbQuery = dbQuery.Where("bathrooms >= ?", query.MinBathrooms)
	}
	if query.Furnished != nil {
		dbQuery = dbQuery.Where("furnished = ?", *query.Furnished)
	}
	if query.PetsAllowed != nil {
		dbQuery = dbQuery.Where("pets_allowed = ?", *query.PetsAllowed)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		dbQuery = dbQuery.Where("title LIKE ? OR description LIKE ? OR address LIKE ?", pattern, pattern, pattern)
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
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	// Convert to domain models
	domainList := make([]*properties.Property, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormPropertyRepository) UpdateByID(ctx context.Context, property *properties.Property) error {
	if err := property.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PropertyModel{}
	model.FromDomain(property)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	r.logger.Info("Updated property with id ", property.ID)
	return nil
}

func (r *gormPropertyRepository) DeleteByID(ctx context.Context, propertyID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", propertyID).Delete(&models.PropertyModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	r.logger.Info("Deleted property with id ", propertyID)
	return nil
}
