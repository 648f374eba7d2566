package accounts

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// User roles
const (
	RoleLandlord        = "landlord"
	RoleTenant          = "tenant"
	RoleServiceProvider = "service_provider"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registering with an email that already exists.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned when email/password authentication fails.
// The same error covers unknown emails and wrong passwords so responses do
// not leak which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User entity
type User struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	Email           string     `json:"email" validate:"required,email,max=254"`
	PasswordHash    string     `json:"-" validate:"required"`
	FirstName       string     `json:"first_name" validate:"required,min=1,max=100"`
	LastName        string     `json:"last_name" validate:"required,min=1,max=100"`
	Phone           string     `json:"phone" validate:"omitempty,max=32"`
	Role            string     `json:"role" validate:"required,oneof=landlord tenant service_provider"`
	IsAdmin         bool       `json:"is_admin"`
	IsVerified      bool       `json:"is_verified"`
	About           string     `json:"about" validate:"max=1000"`
	AvatarURL       string     `json:"avatar_url" validate:"omitempty,url,max=500"`
	DateTimeCreated time.Time  `json:"date_time_created" validate:"required"`
	LastLoginAt     *time.Time `json:"last_login_at"`
}

// Validate for validating User struct
func (u *User) Validate() error {
	validate := validator.New()

	err := validate.Struct(u)
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

// FullName returns the display name used in notifications and messages.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// TokenPair is the access/refresh token pair issued at login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenClaims carries the identity extracted from a verified token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// UserQuery defines filters for listing users (admin console)
type UserQuery struct {
	Role       string `validate:"omitempty,oneof=landlord tenant service_provider"`
	IsVerified *bool
	Search     string `validate:"omitempty,max=100"`
	SortBy     string `validate:"omitempty,oneof=date_time_created email last_name"`
	SortOrder  string `validate:"omitempty,oneof=asc desc"`
	Limit      int    `validate:"omitempty,min=1,max=200"`
	Offset     int    `validate:"omitempty,min=0"`
}

// NewUserQuery creates a UserQuery with default pagination
func NewUserQuery() *UserQuery {
	return &UserQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
		Limit:     50,
	}
}

// Validate for validating UserQuery struct
func (q *UserQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
