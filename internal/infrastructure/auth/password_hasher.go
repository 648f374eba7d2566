package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

// bcryptHasher struct that implements the accounts.PasswordHasher interface
type bcryptHasher struct {
	cost   int
	logger logger.Logger
}

// NewBcryptHasher creates and returns a new instance of bcryptHasher
func NewBcryptHasher(logger logger.Logger) (accounts.PasswordHasher, error) {
	return &bcryptHasher{
		cost:   bcrypt.DefaultCost,
		logger: logger,
	}, nil
}

// Hash derives a bcrypt hash from the plaintext password
func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare checks the plaintext password against a stored bcrypt hash
func (h *bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
