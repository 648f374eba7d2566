package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormTransactionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTransactionRepository creates a new GORM-based TransactionRepository implementation
func NewGormTransactionRepository(db *gorm.DB, logger logger.Logger) (payments.TransactionRepository, error) {
	return &gormTransactionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTransactionRepository) Create(ctx context.Context, transaction *payments.Transaction) error {
	// Validate domain entity (business rules)
	if err := transaction.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.TransactionModel{}
	model.FromDomain(transaction)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	r.logger.Info("Created transaction with id ", transaction.ID)
	return nil
}

func (r *gormTransactionRepository) GetByID(ctx context.Context, transactionID string) (*payments.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).Where("id = ?", transactionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction with ID %s: %w", transactionID, payments.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTransactionRepository) GetByReference(ctx context.Context, reference string) (*payments.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction with reference %s: %w", reference, payments.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTransactionRepository) List(ctx context.Context, query *payments.TransactionQuery) ([]*payments.Transaction, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.TransactionModel
	dbQuery := r.db.WithContext(ctx).Model(&models.TransactionModel{})

	// Apply filters
	if query.LeaseID != "" {
		dbQuery = dbQuery.Where("lease_id = ?", query.LeaseID)
	}
	if query.PayerID != "" {
		dbQuery = dbQuery.Where("payer_id = ?", query.PayerID)
	}
	if query.PayeeID != "" {
		dbQuery = dbQuery.Where("payee_id = ?", query.PayeeID)
	}
	if query.TransactionType != "" {
		dbQuery = dbQuery.Where("transaction_type = ?", query.TransactionType)
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
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	// Convert to domain models
	domainList := make([]*payments.Transaction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormTransactionRepository) UpdateByID(ctx context.Context, transaction *payments.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TransactionModel{}
	model.FromDomain(transaction)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	r.logger.Info("Updated transaction with id ", transaction.ID)
	return nil
}

func (r *gormTransactionRepository) SumSettledByUser(ctx context.Context, userID string) (int64, int64, error) {
	var incoming, outgoing int64

	// Refunded originals stay in the sums; their refund counterpart is a
	// completed transaction in the opposite direction, so the two cancel out.
	settled := []string{payments.StatusCompleted, payments.StatusRefunded}

	err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("payee_id = ? AND status IN ?", userID, settled).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&incoming).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum incoming transactions: %w", err)
	}

	err = r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("payer_id = ? AND status IN ?", userID, settled).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&outgoing).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum outgoing transactions: %w", err)
	}

	return incoming, outgoing, nil
}
