package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/domain/payments"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is returned on any failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse is returned on operations without a payload.
type InfoResponse struct {
	Message string `json:"message"`
}

// validateStruct runs the validator over a request DTO and flattens the
// field errors into a single message.
func validateStruct(s interface{}) error {
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

// RegisterRequest carries the registration payload.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Role      string `json:"role" validate:"required,oneof=landlord tenant service_provider"`
	About     string `json:"about" validate:"max=1000"`
}

// Validate checks the RegisterRequest fields.
func (r *RegisterRequest) Validate() error {
	return validateStruct(r)
}

// LoginRequest carries the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the LoginRequest fields.
func (r *LoginRequest) Validate() error {
	return validateStruct(r)
}

// RefreshRequest carries the refresh token exchange payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Validate checks the RefreshRequest fields.
func (r *RefreshRequest) Validate() error {
	return validateStruct(r)
}

// UpdateProfileRequest carries the mutable profile fields. Absent fields
// leave the current value untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	About     *string `json:"about" validate:"omitempty,max=1000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

// Validate checks the UpdateProfileRequest fields.
func (r *UpdateProfileRequest) Validate() error {
	return validateStruct(r)
}

// LoginResponse carries the authenticated user and its token pair.
type LoginResponse struct {
	User   *accounts.User      `json:"user"`
	Tokens *accounts.TokenPair `json:"tokens"`
}

// CreatePropertyRequest carries a new listing.
type CreatePropertyRequest struct {
	Title          string   `json:"title" validate:"required,min=5,max=200"`
	Description    string   `json:"description" validate:"max=5000"`
	PropertyType   string   `json:"property_type" validate:"required,oneof=apartment house room office commercial"`
	Address        string   `json:"address" validate:"required,max=255"`
	City           string   `json:"city" validate:"required,max=100"`
	State          string   `json:"state" validate:"max=100"`
	Country        string   `json:"country" validate:"required,max=100"`
	Latitude       float64  `json:"latitude" validate:"min=-90,max=90"`
	Longitude      float64  `json:"longitude" validate:"min=-180,max=180"`
	Bedrooms       int      `json:"bedrooms" validate:"min=0,max=50"`
	Bathrooms      int      `json:"bathrooms" validate:"min=0,max=50"`
	AreaSqm        float64  `json:"area_sqm" validate:"omitempty,min=1"`
	RentPriceCents int64    `json:"rent_price_cents" validate:"required,min=1"`
	DepositCents   int64    `json:"deposit_cents" validate:"omitempty,min=0"`
	Currency       string   `json:"currency" validate:"omitempty,len=3,uppercase"`
	Amenities      []string `json:"amenities"`
	ImageURLs      []string `json:"image_urls" validate:"omitempty,dive,url"`
	PetsAllowed    bool     `json:"pets_allowed"`
	Furnished      bool     `json:"furnished"`
}

// Validate checks the CreatePropertyRequest fields.
func (r *CreatePropertyRequest) Validate() error {
	return validateStruct(r)
}

// UpdatePropertyRequest carries mutable listing fields. Absent fields
// leave the current value untouched.
type UpdatePropertyRequest struct {
	Title          *string   `json:"title" validate:"omitempty,min=5,max=200"`
	Description    *string   `json:"description" validate:"omitempty,max=5000"`
	Status         *string   `json:"status" validate:"omitempty,oneof=available rented maintenance inactive"`
	RentPriceCents *int64    `json:"rent_price_cents" validate:"omitempty,min=1"`
	DepositCents   *int64    `json:"deposit_cents" validate:"omitempty,min=0"`
	Amenities      *[]string `json:"amenities"`
	ImageURLs      *[]string `json:"image_urls"`
	PetsAllowed    *bool     `json:"pets_allowed"`
	Furnished      *bool     `json:"furnished"`
}

// Validate checks the UpdatePropertyRequest fields.
func (r *UpdatePropertyRequest) Validate() error {
	return validateStruct(r)
}

// CreateMatchRequest carries a tenant's match request for a property.
type CreateMatchRequest struct {
	PropertyID         string `json:"property_id" validate:"required,uuid4"`
	Message            string `json:"message" validate:"max=2000"`
	MonthlyIncomeCents int64  `json:"monthly_income_cents" validate:"omitempty,min=0"`
	Employment         string `json:"employment" validate:"max=200"`
}

// Validate checks the CreateMatchRequest fields.
func (r *CreateMatchRequest) Validate() error {
	return validateStruct(r)
}

// ScheduleVisitRequest carries the agreed visit time.
type ScheduleVisitRequest struct {
	VisitAt time.Time `json:"visit_at" validate:"required"`
}

// Validate checks the ScheduleVisitRequest fields.
func (r *ScheduleVisitRequest) Validate() error {
	return validateStruct(r)
}

// CreateLeaseRequest carries a lease draft.
type CreateLeaseRequest struct {
	PropertyID   string    `json:"property_id" validate:"required,uuid4"`
	TenantID     string    `json:"tenant_id" validate:"required,uuid4"`
	MatchID      string    `json:"match_id" validate:"omitempty,uuid4"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`
	RentCents    int64     `json:"rent_cents" validate:"required,min=1"`
	DepositCents int64     `json:"deposit_cents" validate:"omitempty,min=0"`
	Currency     string    `json:"currency" validate:"omitempty,len=3,uppercase"`
	PaymentDay   int       `json:"payment_day" validate:"required,min=1,max=28"`
	Terms        string    `json:"terms" validate:"max=20000"`
}

// Validate checks the CreateLeaseRequest fields.
func (r *CreateLeaseRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if !r.EndDate.After(r.StartDate) {
		return fmt.Errorf("validation failed: end_date must lie after start_date")
	}
	return nil
}

// SignStepRequest carries one step of the signature flow.
type SignStepRequest struct {
	Step       string  `json:"step" validate:"required,oneof=document face signature"`
	Confidence float64 `json:"confidence" validate:"omitempty,min=0,max=1"`
	ImageURL   string  `json:"image_url" validate:"omitempty,url,max=500"`
}

// Validate checks the SignStepRequest fields.
func (r *SignStepRequest) Validate() error {
	return validateStruct(r)
}

// AmendLeaseRequest carries replacement terms for a draft lease.
type AmendLeaseRequest struct {
	Terms string `json:"terms" validate:"required,max=20000"`
}

// Validate checks the AmendLeaseRequest fields.
func (r *AmendLeaseRequest) Validate() error {
	return validateStruct(r)
}

// TerminateLeaseRequest carries the early termination reason.
type TerminateLeaseRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=2000"`
}

// Validate checks the TerminateLeaseRequest fields.
func (r *TerminateLeaseRequest) Validate() error {
	return validateStruct(r)
}

// StartThreadRequest carries the first message of a conversation.
type StartThreadRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid4"`
	Subject     string `json:"subject" validate:"max=200"`
	PropertyID  string `json:"property_id" validate:"omitempty,uuid4"`
	Body        string `json:"body" validate:"required,min=1,max=10000"`
}

// Validate checks the StartThreadRequest fields.
func (r *StartThreadRequest) Validate() error {
	return validateStruct(r)
}

// SendMessageRequest carries a message body.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=10000"`
}

// Validate checks the SendMessageRequest fields.
func (r *SendMessageRequest) Validate() error {
	return validateStruct(r)
}

// StartThreadResponse carries the thread and its opening message.
type StartThreadResponse struct {
	Thread  *messaging.Thread  `json:"thread"`
	Message *messaging.Message `json:"message"`
}

// UnreadCountResponse carries an unread counter.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// MarkReadResponse carries the number of items marked read.
type MarkReadResponse struct {
	Updated int `json:"updated"`
}

// ChargeRequest opens a transaction. The payer is the authenticated user.
// Reference is an optional idempotency key; replaying it returns the
// transaction it opened the first time.
type ChargeRequest struct {
	LeaseID         string `json:"lease_id" validate:"omitempty,uuid4"`
	InstallmentID   string `json:"installment_id" validate:"omitempty,uuid4"`
	PayeeID         string `json:"payee_id" validate:"required,uuid4"`
	TransactionType string `json:"transaction_type" validate:"required,oneof=rent deposit service"`
	Method          string `json:"method" validate:"omitempty,oneof=card bank_transfer pse cash"`
	AmountCents     int64  `json:"amount_cents" validate:"required,min=1"`
	Currency        string `json:"currency" validate:"omitempty,len=3,uppercase"`
	Reference       string `json:"reference" validate:"omitempty,min=8,max=100"`
	Description     string `json:"description" validate:"max=500"`
}

// Validate checks the ChargeRequest fields.
func (r *ChargeRequest) Validate() error {
	return validateStruct(r)
}

// SettleRequest resolves a pending transaction.
type SettleRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=completed failed"`
}

// Validate checks the SettleRequest fields.
func (r *SettleRequest) Validate() error {
	return validateStruct(r)
}

// CreatePlanRequest schedules a payment plan for a lease. Frequency
// defaults to monthly.
type CreatePlanRequest struct {
	LeaseID        string    `json:"lease_id" validate:"required,uuid4"`
	TotalCents     int64     `json:"total_cents" validate:"required,min=1"`
	Currency       string    `json:"currency" validate:"omitempty,len=3,uppercase"`
	InstallmentNum int       `json:"installment_num" validate:"required,min=1,max=60"`
	Frequency      string    `json:"frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	FirstDueDate   time.Time `json:"first_due_date" validate:"required"`
}

// Validate checks the CreatePlanRequest fields.
func (r *CreatePlanRequest) Validate() error {
	return validateStruct(r)
}

// PayInstallmentRequest optionally records how an installment was paid.
type PayInstallmentRequest struct {
	Method string `json:"method" validate:"omitempty,oneof=card bank_transfer pse cash"`
}

// Validate checks the PayInstallmentRequest fields.
func (r *PayInstallmentRequest) Validate() error {
	return validateStruct(r)
}

// PlanResponse carries a payment plan with its installments.
type PlanResponse struct {
	Plan         *payments.PaymentPlan   `json:"plan"`
	Installments []*payments.Installment `json:"installments"`
}

// BalanceResponse carries a user's settled balance in cents.
type BalanceResponse struct {
	BalanceCents int64 `json:"balance_cents"`
}

// CreateRatingRequest carries a post-lease review.
type CreateRatingRequest struct {
	RevieweeID         string `json:"reviewee_id" validate:"required,uuid4"`
	LeaseID            string `json:"lease_id" validate:"required,uuid4"`
	OverallScore       int    `json:"overall_score" validate:"required,min=1,max=10"`
	CommunicationScore int    `json:"communication_score" validate:"omitempty,min=1,max=10"`
	PunctualityScore   int    `json:"punctuality_score" validate:"omitempty,min=1,max=10"`
	CareScore          int    `json:"care_score" validate:"omitempty,min=1,max=10"`
	Comment            string `json:"comment" validate:"max=2000"`
}

// Validate checks the CreateRatingRequest fields.
func (r *CreateRatingRequest) Validate() error {
	return validateStruct(r)
}

// RespondRatingRequest carries the reviewee's reply to a rating.
type RespondRatingRequest struct {
	Response string `json:"response" validate:"required,min=1,max=2000"`
}

// Validate checks the RespondRatingRequest fields.
func (r *RespondRatingRequest) Validate() error {
	return validateStruct(r)
}

// HealthResponse reports the service and its backing stores.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}
