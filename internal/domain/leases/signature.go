package leases

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Signature verification steps, completed in order.
const (
	StepDocument  = "document"
	StepFace      = "face"
	StepSignature = "signature"
)

// MinVerificationConfidence is the lowest confidence score accepted for the
// document and face verification steps.
const MinVerificationConfidence = 0.85

// ErrStepOutOfOrder is returned when a verification step is submitted before
// its predecessor has been completed.
var ErrStepOutOfOrder = errors.New("verification step submitted out of order")

// ErrLowConfidence is returned when a verification step scores below
// MinVerificationConfidence.
var ErrLowConfidence = errors.New("verification confidence below threshold")

// ErrAlreadySigned is returned when the party has already completed the
// full signature flow for the lease.
var ErrAlreadySigned = errors.New("party has already signed this lease")

// SignatureRecord tracks one party's progress through the three-step
// signature flow on a lease: document verification, face verification,
// then the signature capture itself.
type SignatureRecord struct {
	ID                 string     `json:"id" validate:"required,uuid4"`
	LeaseID            string     `json:"lease_id" validate:"required,uuid4"`
	SignerID           string     `json:"signer_id" validate:"required,uuid4"`
	Role               string     `json:"role" validate:"required,oneof=landlord tenant"`
	DocumentVerified   bool       `json:"document_verified"`
	DocumentConfidence float64    `json:"document_confidence" validate:"omitempty,min=0,max=1"`
	FaceVerified       bool       `json:"face_verified"`
	FaceConfidence     float64    `json:"face_confidence" validate:"omitempty,min=0,max=1"`
	SignatureImageURL  string     `json:"signature_image_url" validate:"omitempty,max=500"`
	CompletedAt        *time.Time `json:"completed_at"`
	DateTimeCreated    time.Time  `json:"date_time_created" validate:"required"`
	DateTimeUpdated    time.Time  `json:"date_time_updated"`
}

// Validate for validating SignatureRecord struct
func (s *SignatureRecord) Validate() error {
	validate := validator.New()

	err := validate.Struct(s)
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

// NextStep returns the step the signer must complete next, or an empty
// string when the flow is finished.
func (s *SignatureRecord) NextStep() string {
	switch {
	case !s.DocumentVerified:
		return StepDocument
	case !s.FaceVerified:
		return StepFace
	case s.CompletedAt == nil:
		return StepSignature
	default:
		return ""
	}
}

// Completed reports whether all three steps are done.
func (s *SignatureRecord) Completed() bool {
	return s.CompletedAt != nil
}

// ApplyDocumentStep records the document verification result. The step must
// be the next one due and the confidence must clear the threshold.
func (s *SignatureRecord) ApplyDocumentStep(confidence float64) error {
	if s.Completed() {
		return ErrAlreadySigned
	}
	if s.NextStep() != StepDocument {
		return fmt.Errorf("%w: expected %s, got %s", ErrStepOutOfOrder, s.NextStep(), StepDocument)
	}
	if confidence < MinVerificationConfidence {
		return fmt.Errorf("%w: %.2f < %.2f", ErrLowConfidence, confidence, MinVerificationConfidence)
	}
	s.DocumentVerified = true
	s.DocumentConfidence = confidence
	return nil
}

// ApplyFaceStep records the face verification result. The document step must
// already be done and the confidence must clear the threshold.
func (s *SignatureRecord) ApplyFaceStep(confidence float64) error {
	if s.Completed() {
		return ErrAlreadySigned
	}
	if s.NextStep() != StepFace {
		return fmt.Errorf("%w: expected %s, got %s", ErrStepOutOfOrder, s.NextStep(), StepFace)
	}
	if confidence < MinVerificationConfidence {
		return fmt.Errorf("%w: %.2f < %.2f", ErrLowConfidence, confidence, MinVerificationConfidence)
	}
	s.FaceVerified = true
	s.FaceConfidence = confidence
	return nil
}

// ApplySignatureStep stores the captured signature image and completes the
// flow. Both verification steps must already be done.
func (s *SignatureRecord) ApplySignatureStep(imageURL string, now time.Time) error {
	if s.Completed() {
		return ErrAlreadySigned
	}
	if s.NextStep() != StepSignature {
		return fmt.Errorf("%w: expected %s, got %s", ErrStepOutOfOrder, s.NextStep(), StepSignature)
	}
	s.SignatureImageURL = imageURL
	s.CompletedAt = &now
	return nil
}
