package ratings

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when no rating matches the lookup.
var ErrNotFound = errors.New("rating not found")

// ErrAlreadyRated is returned when the reviewer already rated the reviewee
// for the same lease.
var ErrAlreadyRated = errors.New("reviewer has already rated this user for this lease")

// ErrSelfRating is returned when a user tries to rate themselves.
var ErrSelfRating = errors.New("users cannot rate themselves")

// ErrNoSharedLease is returned when the reviewer and reviewee never shared
// a lease.
var ErrNoSharedLease = errors.New("reviewer and reviewee share no lease")

// ErrAlreadyResponded is returned when the reviewee already responded to
// the rating.
var ErrAlreadyResponded = errors.New("rating already has a response")

// ErrNotReviewee is returned when someone other than the reviewee responds
// to a rating.
var ErrNotReviewee = errors.New("only the reviewee may respond to this rating")

// Rating is one user's review of another after a shared lease, on a 1 to 10
// scale with per-category scores.
type Rating struct {
	ID                 string     `json:"id" validate:"required,uuid4"`
	ReviewerID         string     `json:"reviewer_id" validate:"required,uuid4"`
	RevieweeID         string     `json:"reviewee_id" validate:"required,uuid4,necsfield=ReviewerID"`
	LeaseID            string     `json:"lease_id" validate:"required,uuid4"`
	OverallScore       int        `json:"overall_score" validate:"required,min=1,max=10"`
	CommunicationScore int        `json:"communication_score" validate:"omitempty,min=1,max=10"`
	PunctualityScore   int        `json:"punctuality_score" validate:"omitempty,min=1,max=10"`
	CareScore          int        `json:"care_score" validate:"omitempty,min=1,max=10"`
	Comment            string     `json:"comment" validate:"max=2000"`
	Response           string     `json:"response" validate:"max=2000"`
	RespondedAt        *time.Time `json:"responded_at"`
	DateTimeCreated    time.Time  `json:"date_time_created" validate:"required"`
}

// Validate for validating Rating struct
func (r *Rating) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// Summary aggregates the ratings received by one user. Averages are rounded
// to two decimals. Distribution maps each overall score from 1 to 10 onto
// its count; ResponseRate is the share of ratings the user responded to.
type Summary struct {
	UserID          string        `json:"user_id"`
	Count           int64         `json:"count"`
	AverageOverall  float64       `json:"average_overall"`
	AverageComm     float64       `json:"average_communication"`
	AveragePunctual float64       `json:"average_punctuality"`
	AverageCare     float64       `json:"average_care"`
	Distribution    map[int]int64 `json:"distribution"`
	ResponseRate    float64       `json:"response_rate"`
}

// RatingQuery defines filters for listing ratings.
type RatingQuery struct {
	RevieweeID string `validate:"omitempty,uuid4"`
	ReviewerID string `validate:"omitempty,uuid4"`
	LeaseID    string `validate:"omitempty,uuid4"`
	MinScore   int    `validate:"omitempty,min=1,max=10"`
	SortBy     string `validate:"omitempty,oneof=date_time_created overall_score"`
	SortOrder  string `validate:"omitempty,oneof=asc desc"`
	Limit      int    `validate:"omitempty,min=1,max=100"`
	Offset     int    `validate:"omitempty,min=0"`
}

// NewRatingQuery creates a RatingQuery with default pagination
func NewRatingQuery() *RatingQuery {
	return &RatingQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
		Limit:     20,
	}
}

// Validate for validating RatingQuery struct
func (q *RatingQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
