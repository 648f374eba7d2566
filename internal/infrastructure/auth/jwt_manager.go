package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

// Token types embedded in the token_type claim so an access token can never
// pass as a refresh token and vice versa.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned when a token fails parsing, signature
// verification or carries the wrong token type.
var ErrInvalidToken = errors.New("invalid token")

// ErrExpiredToken is returned when a token is past its expiry.
var ErrExpiredToken = errors.New("token expired")

// tokenClaims is the signed claim set. Email and role ride only on access
// tokens; refresh tokens carry the subject alone.
type tokenClaims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// jwtManager struct that implements the accounts.TokenIssuer interface
type jwtManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     logger.Logger
}

// NewJWTManager creates and returns a new instance of jwtManager
func NewJWTManager(settings *config.AuthSettings, logger logger.Logger) (accounts.TokenIssuer, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth settings: %w", err)
	}

	return &jwtManager{
		secret:     []byte(settings.JWTSecret),
		issuer:     settings.Issuer,
		accessTTL:  settings.AccessTokenTTL,
		refreshTTL: settings.RefreshTokenTTL,
		logger:     logger,
	}, nil
}

// IssuePair signs a fresh access/refresh token pair for the user
func (m *jwtManager) IssuePair(userID, email, role string) (*accounts.TokenPair, error) {
	accessToken, err := m.sign(tokenClaims{
		Email:            email,
		Role:             role,
		TokenType:        tokenTypeAccess,
		RegisteredClaims: m.registeredClaims(userID, m.accessTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := m.sign(tokenClaims{
		TokenType:        tokenTypeRefresh,
		RegisteredClaims: m.registeredClaims(userID, m.refreshTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &accounts.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

// VerifyAccess parses an access token and returns its claims
func (m *jwtManager) VerifyAccess(token string) (*accounts.TokenClaims, error) {
	return m.verify(token, tokenTypeAccess)
}

// VerifyRefresh parses a refresh token and returns its claims
func (m *jwtManager) VerifyRefresh(token string) (*accounts.TokenClaims, error) {
	return m.verify(token, tokenTypeRefresh)
}

func (m *jwtManager) registeredClaims(userID string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
}

func (m *jwtManager) sign(claims tokenClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *jwtManager) verify(token, wantType string) (*accounts.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return &accounts.TokenClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
