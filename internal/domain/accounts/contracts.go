package accounts

import "context"

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
	About     string
}

// UpdateProfileInput carries the mutable profile fields. Nil pointers leave
// the current value untouched.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	About     *string
	AvatarURL *string
}

// AccountService defines registration, authentication and profile operations.
type AccountService interface {
	// Register creates a new user with a hashed password.
	// It returns ErrEmailTaken when the email is already registered.
	Register(ctx context.Context, input RegisterInput) (*User, error)

	// Authenticate verifies credentials and issues a token pair.
	// It returns ErrInvalidCredentials on unknown email or wrong password.
	Authenticate(ctx context.Context, email, password, clientIP, userAgent string) (*User, *TokenPair, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, userID string) (*User, error)

	// UpdateProfile applies the provided profile changes to the user.
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error)

	// List retrieves users considering a query filter when set (admin only).
	List(ctx context.Context, query *UserQuery) ([]*User, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create adds a new User to the database
	Create(ctx context.Context, user *User) error
	// GetByID retrieves a User from the database by ID
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetByEmail retrieves a User from the database by email
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpdateByID updates a User in the database by ID
	UpdateByID(ctx context.Context, user *User) error
	// List lists Users in the database with optional filter
	List(ctx context.Context, query *UserQuery) ([]*User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues and verifies the JWT pairs used by the REST API.
type TokenIssuer interface {
	// IssuePair signs a fresh access/refresh token pair for the user.
	IssuePair(userID, email, role string) (*TokenPair, error)
	// VerifyAccess parses an access token and returns its claims.
	VerifyAccess(token string) (*TokenClaims, error)
	// VerifyRefresh parses a refresh token and returns its claims.
	VerifyRefresh(token string) (*TokenClaims, error)
}
