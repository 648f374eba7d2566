package matching

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when no match request matches the lookup.
var ErrNotFound = errors.New("match request not found")

// ErrDuplicateRequest is returned when a tenant already has a live request
// for the same property.
var ErrDuplicateRequest = errors.New("a live match request already exists for this property")

// ErrNotParty is returned when a user acts on a match request they are not
// the tenant or landlord of.
var ErrNotParty = errors.New("user is not a party to this match request")

// ErrPropertyUnavailable is returned when the requested property is not
// open for new match requests.
var ErrPropertyUnavailable = errors.New("property is not available for matching")

// ErrOwnProperty is returned when a tenant requests a match on their own
// property.
var ErrOwnProperty = errors.New("tenants cannot request their own property")

// MatchRequest links a tenant's interest to a landlord's property and tracks
// its progress through the visit, documents and contract stages.
type MatchRequest struct {
	ID                   string     `json:"id" validate:"required,uuid4"`
	PropertyID           string     `json:"property_id" validate:"required,uuid4"`
	TenantID             string     `json:"tenant_id" validate:"required,uuid4"`
	LandlordID           string     `json:"landlord_id" validate:"required,uuid4"`
	Status               string     `json:"status" validate:"required,oneof=pending accepted visit_scheduled visit_completed documents_submitted documents_approved contract_created rejected cancelled expired"`
	Message              string     `json:"message" validate:"max=2000"`
	MonthlyIncomeCents   int64      `json:"monthly_income_cents" validate:"omitempty,min=0"`
	Employment           string     `json:"employment" validate:"max=200"`
	VisitScheduledAt     *time.Time `json:"visit_scheduled_at"`
	VisitCompletedAt     *time.Time `json:"visit_completed_at"`
	DocumentsSubmittedAt *time.Time `json:"documents_submitted_at"`
	DocumentsApprovedAt  *time.Time `json:"documents_approved_at"`
	ExpiresAt            time.Time  `json:"expires_at" validate:"required"`
	DateTimeCreated      time.Time  `json:"date_time_created" validate:"required"`
	DateTimeUpdated      time.Time  `json:"date_time_updated"`
}

// Validate for validating MatchRequest struct
func (m *MatchRequest) Validate() error {
	validate := validator.New()

	err := validate.Struct(m)
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

// IsParty reports whether the user is the tenant or the landlord of the
// request.
func (m *MatchRequest) IsParty(userID string) bool {
	return userID == m.TenantID || userID == m.LandlordID
}

// MatchQuery defines filters for listing match requests.
type MatchQuery struct {
	PropertyID string `validate:"omitempty,uuid4"`
	TenantID   string `validate:"omitempty,uuid4"`
	LandlordID string `validate:"omitempty,uuid4"`
	Status     string `validate:"omitempty,oneof=pending accepted visit_scheduled visit_completed documents_submitted documents_approved contract_created rejected cancelled expired"`
	SortBy     string `validate:"omitempty,oneof=date_time_created expires_at"`
	SortOrder  string `validate:"omitempty,oneof=asc desc"`
	Limit      int    `validate:"omitempty,min=1,max=100"`
	Offset     int    `validate:"omitempty,min=0"`
}

// NewMatchQuery creates a MatchQuery with default pagination
func NewMatchQuery() *MatchQuery {
	return &MatchQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
		Limit:     20,
	}
}

// Validate for validating MatchQuery struct
func (q *MatchQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
