package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Recorded actions.
const (
	ActionLogin           = "login"
	ActionLoginFailed     = "login_failed"
	ActionRegister        = "register"
	ActionProfileUpdate   = "profile_update"
	ActionPropertyCreate  = "property_create"
	ActionPropertyUpdate  = "property_update"
	ActionPropertyDelete  = "property_delete"
	ActionMatchUpdate     = "match_update"
	ActionLeaseCreate     = "lease_create"
	ActionLeaseAmend      = "lease_amend"
	ActionLeaseSign       = "lease_sign"
	ActionLeaseTerminate  = "lease_terminate"
	ActionPaymentCharge   = "payment_charge"
	ActionPaymentSettle   = "payment_settle"
	ActionRatingCreate    = "rating_create"
	ActionAdminUserUpdate = "admin_user_update"
)

// ErrNotFound is returned when no entry matches the lookup.
var ErrNotFound = errors.New("activity entry not found")

// Entry is one audit log record of a user action.
type Entry struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	UserID          string    `json:"user_id" validate:"omitempty,uuid4"`
	Action          string    `json:"action" validate:"required,max=100"`
	TargetID        string    `json:"target_id" validate:"omitempty,uuid4"`
	Detail          string    `json:"detail" validate:"max=2000"`
	ClientIP        string    `json:"client_ip" validate:"max=64"`
	UserAgent       string    `json:"user_agent" validate:"max=500"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`
}

// Validate for validating Entry struct
func (e *Entry) Validate() error {
	validate := validator.New()

	err := validate.Struct(e)
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

// EntryQuery defines filters for listing audit entries. Action matches as
// a prefix, so "payment" covers payment_charge and payment_settle.
type EntryQuery struct {
	UserID    string     `validate:"omitempty,uuid4"`
	Action    string     `validate:"omitempty,max=100"`
	TargetID  string     `validate:"omitempty,uuid4"`
	From      *time.Time `validate:"omitempty"`
	To        *time.Time `validate:"omitempty"`
	SortOrder string     `validate:"omitempty,oneof=asc desc"`
	Limit     int        `validate:"omitempty,min=1,max=500"`
	Offset    int        `validate:"omitempty,min=0"`
}

// NewEntryQuery creates an EntryQuery with default pagination
func NewEntryQuery() *EntryQuery {
	return &EntryQuery{
		SortOrder: "desc",
		Limit:     50,
	}
}

// Validate for validating EntryQuery struct
func (q *EntryQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return fmt.Errorf("validation failed: To must not lie before From")
	}
	return nil
}

// ActionCount is one row of the per-action activity report.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// DayCount is one row of the per-day activity report. Day uses the
// YYYY-MM-DD layout.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// ActorCount is one row of the most-active-users report.
type ActorCount struct {
	UserID string `json:"user_id"`
	Count  int64  `json:"count"`
}

// Report summarizes platform activity over a period.
type Report struct {
	From         time.Time     `json:"from"`
	To           time.Time     `json:"to"`
	TotalEntries int64         `json:"total_entries"`
	ActiveUsers  int64         `json:"active_users"`
	ByAction     []ActionCount `json:"by_action"`
	ByDay        []DayCount    `json:"by_day"`
	TopActors    []ActorCount  `json:"top_actors"`
}
