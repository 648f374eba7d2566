package persistence

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/wilsonA2000/verihome/internal/domain/ratings"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRatingRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRatingRepository creates a new GORM-based RatingRepository implementation
func NewGormRatingRepository(db *gorm.DB, logger logger.Logger) (ratings.RatingRepository, error) {
	return &gormRatingRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRatingRepository) Create(ctx context.Context, rating *ratings.Rating) error {
	// Validate domain entity (business rules)
	if err := rating.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.RatingModel{}
	model.FromDomain(rating)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}

	r.logger.Info("Created rating with id ", rating.ID)
	return nil
}

func (r *gormRatingRepository) GetByID(ctx context.Context, ratingID string) (*ratings.Rating, error) {
	var model models.RatingModel
	if err := r.db.WithContext(ctx).Where("id = ?", ratingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rating with ID %s: %w", ratingID, ratings.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch rating: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRatingRepository) GetByReviewerAndLease(ctx context.Context, reviewerID, revieweeID, leaseID string) (*ratings.Rating, error) {
	var model models.RatingModel
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ? AND reviewee_id = ? AND lease_id = ?", reviewerID, revieweeID, leaseID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rating by %s for lease %s: %w", reviewerID, leaseID, ratings.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch rating: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRatingRepository) UpdateByID(ctx context.Context, rating *ratings.Rating) error {
	// Validate domain entity (business rules)
	if err := rating.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.RatingModel{}
	model.FromDomain(rating)

	result := r.db.WithContext(ctx).Model(&models.RatingModel{}).Where("id = ?", rating.ID).Updates(map[string]interface{}{
		"response":     model.Response,
		"responded_at": model.RespondedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("rating with ID %s: %w", rating.ID, ratings.ErrNotFound)
	}

	r.logger.Info("Updated rating with id ", rating.ID)
	return nil
}

func (r *gormRatingRepository) List(ctx context.Context, query *ratings.RatingQuery) ([]*ratings.Rating, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.RatingModel
	dbQuery := r.db.WithContext(ctx).Model(&models.RatingModel{})

	// Apply filters
	if query.RevieweeID != "" {
		dbQuery = dbQuery.Where("reviewee_id = ?", query.RevieweeID)
	}
	if query.ReviewerID != "" {
		dbQuery = dbQuery.Where("reviewer_id = ?", query.ReviewerID)
	}
	if query.LeaseID != "" {
		dbQuery = dbQuery.Where("lease_id = ?", query.LeaseID)
	}
	if query.MinScore > 0 {
		dbQuery = dbQuery.Where("overall_score >= ?", query.MinScore)
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
		return nil, fmt.Errorf("failed to fetch ratings: %w", err)
	}

	// Convert to domain models
	domainList := make([]*ratings.Rating, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormRatingRepository) Summarize(ctx context.Context, userID string) (*ratings.Summary, error) {
	summary := &ratings.Summary{UserID: userID, Distribution: make(map[int]int64, 10)}

	// Category scores of zero mean "not scored" and stay out of the averages
	row := struct {
		Count           int64
		Responded       int64
		AverageOverall  float64
		AverageComm     float64
		AveragePunctual float64
		AverageCare     float64
	}{}

	err := r.db.WithContext(ctx).Model(&models.RatingModel{}).
		Where("reviewee_id = ?", userID).
		Select(
			"COUNT(*) AS count, " +
				"COUNT(responded_at) AS responded, " +
				"COALESCE(AVG(overall_score), 0) AS average_overall, " +
				"COALESCE(AVG(NULLIF(communication_score, 0)), 0) AS average_comm, " +
				"COALESCE(AVG(NULLIF(punctuality_score, 0)), 0) AS average_punctual, " +
				"COALESCE(AVG(NULLIF(care_score, 0)), 0) AS average_care").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ratings: %w", err)
	}

	summary.Count = row.Count
	summary.AverageOverall = round2(row.AverageOverall)
	summary.AverageComm = round2(row.AverageComm)
	summary.AveragePunctual = round2(row.AveragePunctual)
	summary.AverageCare = round2(row.AverageCare)
	if row.Count > 0 {
		summary.ResponseRate = round2(float64(row.Responded) / float64(row.Count))
	}

	for score := 1; score <= 10; score++ {
		summary.Distribution[score] = 0
	}

	var buckets []struct {
		Score int
		Total int64
	}
	err = r.db.WithContext(ctx).Model(&models.RatingModel{}).
		Where("reviewee_id = ?", userID).
		Select("overall_score AS score, COUNT(*) AS total").
		Group("overall_score").
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to bucket rating scores: %w", err)
	}
	for _, bucket := range buckets {
		summary.Distribution[bucket.Score] = bucket.Total
	}

	return summary, nil
}

// round2 keeps reported averages at two decimal places.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func (r *gormRatingRepository) DeleteByID(ctx context.Context, ratingID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", ratingID).Delete(&models.RatingModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	r.logger.Info("Deleted rating with id ", ratingID)
	return nil
}
