package messaging

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrThreadNotFound is returned when no thread matches the lookup.
var ErrThreadNotFound = errors.New("message thread not found")

// ErrMessageNotFound is returned when no message matches the lookup.
var ErrMessageNotFound = errors.New("message not found")

// ErrNotParticipant is returned when a user acts on a thread they do not
// belong to.
var ErrNotParticipant = errors.New("user is not a participant of this thread")

// Thread is a two-party conversation, optionally anchored to a property.
type Thread struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	Subject         string    `json:"subject" validate:"max=200"`
	InitiatorID     string    `json:"initiator_id" validate:"required,uuid4"`
	RecipientID     string    `json:"recipient_id" validate:"required,uuid4,necsfield=InitiatorID"`
	PropertyID      string    `json:"property_id" validate:"omitempty,uuid4"`
	LastMessageAt   time.Time `json:"last_message_at"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`
}

// Validate for validating Thread struct
func (t *Thread) Validate() error {
	validate := validator.New()

	err := validate.Struct(t)
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

// HasParticipant reports whether userID belongs to the thread.
func (t *Thread) HasParticipant(userID string) bool {
	return t.InitiatorID == userID || t.RecipientID == userID
}

// OtherParticipant returns the counterpart of userID in the thread, or an
// empty string when userID is not a participant.
func (t *Thread) OtherParticipant(userID string) string {
	switch userID {
	case t.InitiatorID:
		return t.RecipientID
	case t.RecipientID:
		return t.InitiatorID
	default:
		return ""
	}
}

// Message is a single message inside a thread.
type Message struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	ThreadID        string     `json:"thread_id" validate:"required,uuid4"`
	SenderID        string     `json:"sender_id" validate:"required,uuid4"`
	Body            string     `json:"body" validate:"required,min=1,max=10000"`
	ReadAt          *time.Time `json:"read_at"`
	DateTimeCreated time.Time  `json:"date_time_created" validate:"required"`
}

// Validate for validating Message struct
func (m *Message) Validate() error {
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

// ThreadQuery defines filters for listing a user's threads.
type ThreadQuery struct {
	UserID     string `validate:"required,uuid4"`
	PropertyID string `validate:"omitempty,uuid4"`
	Limit      int    `validate:"omitempty,min=1,max=100"`
	Offset     int    `validate:"omitempty,min=0"`
}

// NewThreadQuery creates a ThreadQuery with default pagination
func NewThreadQuery(userID string) *ThreadQuery {
	return &ThreadQuery{
		UserID: userID,
		Limit:  20,
	}
}

// Validate for validating ThreadQuery struct
func (q *ThreadQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// MessageQuery defines filters for listing messages inside a thread.
type MessageQuery struct {
	ThreadID string `validate:"required,uuid4"`
	Limit    int    `validate:"omitempty,min=1,max=200"`
	Offset   int    `validate:"omitempty,min=0"`
}

// NewMessageQuery creates a MessageQuery with default pagination
func NewMessageQuery(threadID string) *MessageQuery {
	return &MessageQuery{
		ThreadID: threadID,
		Limit:    50,
	}
}

// Validate for validating MessageQuery struct
func (q *MessageQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
