package ratings

import "context"

// CreateInput carries the fields a reviewer submits.
type CreateInput struct {
	ReviewerID         string
	RevieweeID         string
	LeaseID            string
	OverallScore       int
	CommunicationScore int
	PunctualityScore   int
	CareScore          int
	Comment            string
}

// RatingService defines methods for post-lease reviews
type RatingService interface {
	// Create stores a review. The reviewer and reviewee must share the
	// lease and a reviewer rates a user at most once per lease.
	Create(ctx context.Context, input *CreateInput) (*Rating, error)
	// GetByID retrieves a rating by its ID.
	GetByID(ctx context.Context, ratingID string) (*Rating, error)
	// List retrieves ratings matching the query filters.
	List(ctx context.Context, query *RatingQuery) ([]*Rating, error)
	// Respond stores the reviewee's reply to a rating. Only the reviewee
	// may respond, and only once.
	Respond(ctx context.Context, ratingID, revieweeID, response string) (*Rating, error)
	// Summarize aggregates the ratings received by the user.
	Summarize(ctx context.Context, userID string) (*Summary, error)
	// Delete removes a rating. Admin only.
	Delete(ctx context.Context, ratingID string) error
}

// RatingRepository defines methods for rating persistence
type RatingRepository interface {
	// Create stores a new rating.
	Create(ctx context.Context, rating *Rating) error
	// GetByID retrieves a rating by its ID.
	GetByID(ctx context.Context, ratingID string) (*Rating, error)
	// GetByReviewerAndLease returns the reviewer's rating of the reviewee
	// for the lease, or ErrNotFound.
	GetByReviewerAndLease(ctx context.Context, reviewerID, revieweeID, leaseID string) (*Rating, error)
	// UpdateByID updates a stored rating.
	UpdateByID(ctx context.Context, rating *Rating) error
	// List retrieves ratings matching the query filters.
	List(ctx context.Context, query *RatingQuery) ([]*Rating, error)
	// Summarize aggregates the ratings received by the user.
	Summarize(ctx context.Context, userID string) (*Summary, error)
	// DeleteByID removes a rating by its ID.
	DeleteByID(ctx context.Context, ratingID string) error
}
