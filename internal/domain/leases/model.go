package leases

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wilsonA2000/verihome/internal/pkg/validators"
)

// Lease statuses.
const (
	StatusDraft         = "draft"
	StatusPendingTenant = "pending_tenant_signature"
	StatusActive        = "active"
	StatusExpired       = "expired"
	StatusTerminated    = "terminated"
)

// ErrNotFound is returned when no lease matches the lookup.
var ErrNotFound = errors.New("lease not found")

// ErrNotSignable is returned when a signature is attempted on a lease that
// is not awaiting one from the caller.
var ErrNotSignable = errors.New("lease is not awaiting this signature")

// ErrNotParty is returned when a user acts on a lease they are not the
// tenant or landlord of.
var ErrNotParty = errors.New("user is not a party to this lease")

// ErrActiveLeaseExists is returned when a lease is drafted for a property
// that already has a live lease.
var ErrActiveLeaseExists = errors.New("property already has a live lease")

// ErrNotActive is returned when a lifecycle action requires an active lease.
var ErrNotActive = errors.New("lease is not active")

// ErrNotDraft is returned when terms are amended after signing has begun.
var ErrNotDraft = errors.New("only draft leases can be amended")

// Lease is a rental contract between a landlord and a tenant over a property.
type Lease struct {
	ID                string     `json:"id" validate:"required,uuid4"`
	PropertyID        string     `json:"property_id" validate:"required,uuid4"`
	LandlordID        string     `json:"landlord_id" validate:"required,uuid4"`
	TenantID          string     `json:"tenant_id" validate:"required,uuid4"`
	MatchID           string     `json:"match_id" validate:"omitempty,uuid4"`
	Status            string     `json:"status" validate:"required,oneof=draft pending_tenant_signature active expired terminated"`
	StartDate         time.Time  `json:"start_date" validate:"required"`
	EndDate           time.Time  `json:"end_date" validate:"required,endafterstart"`
	RentCents         int64      `json:"rent_cents" validate:"required,min=1"`
	DepositCents      int64      `json:"deposit_cents" validate:"omitempty,min=0"`
	Currency          string     `json:"currency" validate:"required,len=3,uppercase"`
	PaymentDay        int        `json:"payment_day" validate:"required,min=1,max=28"`
	Terms             string     `json:"terms" validate:"max=20000"`
	LandlordSignedAt  *time.Time `json:"landlord_signed_at"`
	TenantSignedAt    *time.Time `json:"tenant_signed_at"`
	TerminatedAt      *time.Time `json:"terminated_at"`
	TerminationReason string     `json:"termination_reason" validate:"max=2000"`
	DateTimeCreated   time.Time  `json:"date_time_created" validate:"required"`
	DateTimeUpdated   time.Time  `json:"date_time_updated"`
}

// Validate for validating Lease struct
func (l *Lease) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("endafterstart", validators.EndAfterStartValidation); err != nil {
		return fmt.Errorf("failed to register validation: %w", err)
	}

	err := validate.Struct(l)
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

// IsLive reports whether the lease is currently binding or awaiting the
// tenant's signature.
func (l *Lease) IsLive() bool {
	return l.Status == StatusActive || l.Status == StatusPendingTenant
}

// FullySigned reports whether both parties have signed.
func (l *Lease) FullySigned() bool {
	return l.LandlordSignedAt != nil && l.TenantSignedAt != nil
}

// IsParty reports whether the user is the tenant or the landlord of the
// lease.
func (l *Lease) IsParty(userID string) bool {
	return userID == l.TenantID || userID == l.LandlordID
}

// LeaseQuery defines filters for listing leases.
type LeaseQuery struct {
	PropertyID string `validate:"omitempty,uuid4"`
	LandlordID string `validate:"omitempty,uuid4"`
	TenantID   string `validate:"omitempty,uuid4"`
	Status     string `validate:"omitempty,oneof=draft pending_tenant_signature active expired terminated"`
	SortBy     string `validate:"omitempty,oneof=date_time_created start_date end_date"`
	SortOrder  string `validate:"omitempty,oneof=asc desc"`
	Limit      int    `validate:"omitempty,min=1,max=100"`
	Offset     int    `validate:"omitempty,min=0"`
}

// NewLeaseQuery creates a LeaseQuery with default pagination
func NewLeaseQuery() *LeaseQuery {
	return &LeaseQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
		Limit:     20,
	}
}

// Validate for validating LeaseQuery struct
func (q *LeaseQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
