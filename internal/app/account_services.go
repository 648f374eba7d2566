package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	mail "github.com/wilsonA2000/verihome/internal/infrastructure/email"
	"github.com/wilsonA2000/verihome/internal/infrastructure/tasks"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
)

// accountService implements the AccountService interface for registration,
// authentication and profile management
type accountService struct {
	userRepository accounts.UserRepository
	hasher         accounts.PasswordHasher
	tokens         accounts.TokenIssuer
	recorder       activity.Recorder
	queue          tasks.Enqueuer
	logger         logger.Logger
}

// NewAccountService creates a new instance of AccountService. The recorder
// and queue may be nil, which disables audit records and outbound email.
func NewAccountService(userRepository accounts.UserRepository, hasher accounts.PasswordHasher, tokens accounts.TokenIssuer, recorder activity.Recorder, queue tasks.Enqueuer, logger logger.Logger) (accounts.AccountService, error) {
	return &accountService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		recorder:       recorder,
		queue:          queue,
		logger:         logger,
	}, nil
}

func (s *accountService) Register(ctx context.Context, input accounts.RegisterInput) (*accounts.User, error) {
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("password must have at least 8 characters")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	user := &accounts.User{
		ID:              uuid.New().String(),
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:    hash,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		Role:            input.Role,
		About:           input.About,
		DateTimeCreated: time.Now().UTC(),
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.record(ctx, &activity.RecordInput{UserID: user.ID, Action: activity.ActionRegister})

	if s.queue != nil {
		s.queue.Enqueue(tasks.Task{
			Kind: tasks.KindEmailDelivery,
			Payload: &mail.Message{
				To:      user.Email,
				Subject: "Welcome to VeriHome",
				Body:    fmt.Sprintf("Hi %s,\n\nYour account is ready. Sign in to publish listings or request matches.", user.FirstName),
			},
		})
	}

	s.logger.Info("Registered user with id ", user.ID)
	return user, nil
}

func (s *accountService) Authenticate(ctx context.Context, email, password, clientIP, userAgent string) (*accounts.User, *accounts.TokenPair, error) {
	user, err := s.userRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			// Detail keeps the attempted email without conceding it exists.
			s.record(ctx, &activity.RecordInput{Action: activity.ActionLoginFailed, Detail: email, ClientIP: clientIP, UserAgent: userAgent})
			return nil, nil, fmt.Errorf("%w", accounts.ErrInvalidCredentials)
		}
		return nil, nil, fmt.Errorf("%w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.record(ctx, &activity.RecordInput{UserID: user.ID, Action: activity.ActionLoginFailed, ClientIP: clientIP, UserAgent: userAgent})
		return nil, nil, fmt.Errorf("%w", accounts.ErrInvalidCredentials)
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepository.UpdateByID(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.record(ctx, &activity.RecordInput{UserID: user.ID, Action: activity.ActionLogin, ClientIP: clientIP, UserAgent: userAgent})
	s.logger.Info("User ", user.ID, " logged in")
	return user, pair, nil
}

func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*accounts.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// Re-read the user so a refreshed access token carries the current role.
	user, err := s.userRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, nil
}

func (s *accountService) GetByID(ctx context.Context, userID string) (*accounts.User, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return user, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID string, input accounts.UpdateProfileInput) (*accounts.User, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.About != nil {
		user.About = *input.About
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := s.userRepository.UpdateByID(ctx, user); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.record(ctx, &activity.RecordInput{UserID: user.ID, Action: activity.ActionProfileUpdate})
	return user, nil
}

func (s *accountService) List(ctx context.Context, query *accounts.UserQuery) ([]*accounts.User, error) {
	users, err := s.userRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return users, nil
}

func (s *accountService) record(ctx context.Context, input *activity.RecordInput) {
	if s.recorder != nil {
		s.recorder.Record(ctx, input)
	}
}
