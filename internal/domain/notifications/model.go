package notifications

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Notification types.
const (
	TypeMatchUpdate     = "match_update"
	TypeNewMessage      = "new_message"
	TypeLeaseUpdate     = "lease_update"
	TypePaymentUpdate   = "payment_update"
	TypeRatingReceived  = "rating_received"
	TypePaymentReminder = "payment_reminder"
	TypeSystem          = "system"
)

// ErrNotFound is returned when no notification matches the lookup.
var ErrNotFound = errors.New("notification not found")

// Notification is a single in-app notification addressed to one user.
type Notification struct {
	ID               string     `json:"id" validate:"required,uuid4"`
	UserID           string     `json:"user_id" validate:"required,uuid4"`
	NotificationType string     `json:"notification_type" validate:"required,oneof=match_update new_message lease_update payment_update rating_received payment_reminder system"`
	Title            string     `json:"title" validate:"required,max=200"`
	Body             string     `json:"body" validate:"max=2000"`
	RelatedID        string     `json:"related_id" validate:"omitempty,uuid4"`
	ReadAt           *time.Time `json:"read_at"`
	DateTimeCreated  time.Time  `json:"date_time_created" validate:"required"`
}

// Validate for validating Notification struct
func (n *Notification) Validate() error {
	validate := validator.New()

	err := validate.Struct(n)
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

// NotificationQuery defines filters for listing a user's notifications.
type NotificationQuery struct {
	UserID           string `validate:"required,uuid4"`
	NotificationType string `validate:"omitempty,oneof=match_update new_message lease_update payment_update rating_received payment_reminder system"`
	UnreadOnly       bool
	Limit            int `validate:"omitempty,min=1,max=100"`
	Offset           int `validate:"omitempty,min=0"`
}

// NewNotificationQuery creates a NotificationQuery with default pagination
func NewNotificationQuery(userID string) *NotificationQuery {
	return &NotificationQuery{
		UserID: userID,
		Limit:  20,
	}
}

// Validate for validating NotificationQuery struct
func (q *NotificationQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
