package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormSignatureRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSignatureRepository creates a new GORM-based SignatureRepository implementation
func NewGormSignatureRepository(db *gorm.DB, logger logger.Logger) (leases.SignatureRepository, error) {
	return &gormSignatureRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSignatureRepository) Create(ctx context.Context, record *leases.SignatureRecord) error {
	// Validate domain entity (business rules)
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.SignatureModel{}
	model.FromDomain(record)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create signature record: %w", err)
	}

	r.logger.Info("Created signature record with id ", record.ID)
	return nil
}

func (r *gormSignatureRepository) GetByLeaseAndSigner(ctx context.Context, leaseID, signerID string) (*leases.SignatureRecord, error) {
	var model models.SignatureModel
	err := r.db.WithContext(ctx).
		Where("lease_id = ? AND signer_id = ?", leaseID, signerID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("signature record for lease %s and signer %s: %w", leaseID, signerID, leases.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch signature record: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSignatureRepository) ListByLeaseID(ctx context.Context, leaseID string) ([]*leases.SignatureRecord, error) {
	var modelList []*models.SignatureModel
	err := r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signature records: %w", err)
	}

	domainList := make([]*leases.SignatureRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormSignatureRepository) UpdateByID(ctx context.Context, record *leases.SignatureRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SignatureModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update signature record: %w", err)
	}

	r.logger.Info("Updated signature record with id ", record.ID)
	return nil
}
