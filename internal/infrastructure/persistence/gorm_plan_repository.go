package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPlanRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPlanRepository creates a new GORM-based PlanRepository implementation
func NewGormPlanRepository(db *gorm.DB, logger logger.Logger) (payments.PlanRepository, error) {
	return &gormPlanRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPlanRepository) Create(ctx context.Context, plan *payments.PaymentPlan, installments []*payments.Installment) error {
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	for _, installment := range installments {
		if err := installment.Validate(); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}
	}

	planModel := &models.PaymentPlanModel{}
	planModel.FromDomain(plan)

	installmentModels := make([]*models.InstallmentModel, len(installments))
	for i, installment := range installments {
		installmentModels[i] = &models.InstallmentModel{}
		installmentModels[i].FromDomain(installment)
	}

	// Plan and installments are written atomically
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(planModel).Error; err != nil {
			return err
		}
		if len(installmentModels) > 0 {
			if err := tx.Create(installmentModels).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create payment plan: %w", err)
	}

	r.logger.Info("Created payment plan with id ", plan.ID)
	return nil
}

func (r *gormPlanRepository) GetByID(ctx context.Context, planID string) (*payments.PaymentPlan, error) {
	var model models.PaymentPlanModel
	if err := r.db.WithContext(ctx).Where("id = ?", planID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment plan with ID %s: %w", planID, payments.ErrPlanNotFound)
		}
		return nil, fmt.Errorf("failed to fetch payment plan: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPlanRepository) GetByLeaseID(ctx context.Context, leaseID string) (*payments.PaymentPlan, error) {
	var model models.PaymentPlanModel
	if err := r.db.WithContext(ctx).Where("lease_id = ?", leaseID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment plan for lease %s: %w", leaseID, payments.ErrPlanNotFound)
		}
		return nil, fmt.Errorf("failed to fetch payment plan: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPlanRepository) ListInstallments(ctx context.Context, planID string) ([]*payments.Installment, error) {
	var modelList []*models.InstallmentModel
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("sequence asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installments: %w", err)
	}

	domainList := make([]*payments.Installment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormPlanRepository) GetInstallmentByID(ctx context.Context, installmentID string) (*payments.Installment, error) {
	var model models.InstallmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", installmentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("installment with ID %s: %w", installmentID, payments.ErrInstallmentNotFound)
		}
		return nil, fmt.Errorf("failed to fetch installment: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPlanRepository) UpdateInstallmentByID(ctx context.Context, installment *payments.Installment) error {
	if err := installment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.InstallmentModel{}
	model.FromDomain(installment)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}

	return nil
}

func (r *gormPlanRepository) ListDueBefore(ctx context.Context, now time.Time) ([]*payments.Installment, error) {
	var modelList []*models.InstallmentModel
	err := r.db.WithContext(ctx).
		Where("due_date < ?", now).
		Where("status = ?", payments.InstallmentDue).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due installments: %w", err)
	}

	domainList := make([]*payments.Installment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
