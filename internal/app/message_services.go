package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
)

// messageService implements the MessageService interface for two-party
// conversations
type messageService struct {
	threadRepository  messaging.ThreadRepository
	messageRepository messaging.MessageRepository
	userRepository    accounts.UserRepository
	notifier          notifications.NotificationService
	logger            logger.Logger
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(threadRepository messaging.ThreadRepository, messageRepository messaging.MessageRepository, userRepository accounts.UserRepository, notifier notifications.NotificationService, logger logger.Logger) (messaging.MessageService, error) {
	return &messageService{
		threadRepository:  threadRepository,
		messageRepository: messageRepository,
		userRepository:    userRepository,
		notifier:          notifier,
		logger:            logger,
	}, nil
}

func (s *messageService) StartThread(ctx context.Context, input *messaging.StartThreadInput) (*messaging.Thread, *messaging.Message, error) {
	if input.InitiatorID == input.RecipientID {
		return nil, nil, fmt.Errorf("cannot start a conversation with yourself")
	}
	if _, err := s.userRepository.GetByID(ctx, input.RecipientID); err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	now := time.Now().UTC()
	thread, err := s.threadRepository.GetByParticipants(ctx, input.InitiatorID, input.RecipientID, input.PropertyID)
	if err != nil {
		if !errors.Is(err, messaging.ErrThreadNotFound) {
			return nil, nil, fmt.Errorf("%w", err)
		}
		thread = &messaging.Thread{
			ID:              uuid.New().String(),
			Subject:         input.Subject,
			InitiatorID:     input.InitiatorID,
			RecipientID:     input.RecipientID,
			PropertyID:      input.PropertyID,
			LastMessageAt:   now,
			DateTimeCreated: now,
		}
		if err := s.threadRepository.Create(ctx, thread); err != nil {
			return nil, nil, fmt.Errorf("%w", err)
		}
		s.logger.Info("Created thread with id ", thread.ID)
	}

	message, err := s.appendMessage(ctx, thread, input.InitiatorID, input.Body, now)
	if err != nil {
		return nil, nil, err
	}

	return thread, message, nil
}

func (s *messageService) GetThread(ctx context.Context, threadID, userID string) (*messaging.Thread, error) {
	thread, err := s.threadRepository.GetByID(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !thread.HasParticipant(userID) {
		return nil, fmt.Errorf("%w", messaging.ErrNotParticipant)
	}
	return thread, nil
}

func (s *messageService) ListThreads(ctx context.Context, query *messaging.ThreadQuery) ([]*messaging.Thread, error) {
	threads, err := s.threadRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return threads, nil
}

func (s *messageService) Send(ctx context.Context, threadID, senderID, body string) (*messaging.Message, error) {
	thread, err := s.threadRepository.GetByID(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !thread.HasParticipant(senderID) {
		return nil, fmt.Errorf("%w", messaging.ErrNotParticipant)
	}

	return s.appendMessage(ctx, thread, senderID, body, time.Now().UTC())
}

func (s *messageService) ListMessages(ctx context.Context, query *messaging.MessageQuery, userID string) ([]*messaging.Message, error) {
	thread, err := s.threadRepository.GetByID(ctx, query.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !thread.HasParticipant(userID) {
		return nil, fmt.Errorf("%w", messaging.ErrNotParticipant)
	}

	messages, err := s.messageRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return messages, nil
}

func (s *messageService) MarkRead(ctx context.Context, threadID, userID string) (int, error) {
	thread, err := s.threadRepository.GetByID(ctx, threadID)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	if !thread.HasParticipant(userID) {
		return 0, fmt.Errorf("%w", messaging.ErrNotParticipant)
	}

	updated, err := s.messageRepository.MarkThreadRead(ctx, threadID, userID)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return updated, nil
}

func (s *messageService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.messageRepository.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return count, nil
}

// appendMessage stores the message, bumps the thread's activity timestamp and
// notifies the counterpart.
func (s *messageService) appendMessage(ctx context.Context, thread *messaging.Thread, senderID, body string, now time.Time) (*messaging.Message, error) {
	message := &messaging.Message{
		ID:              uuid.New().String(),
		ThreadID:        thread.ID,
		SenderID:        senderID,
		Body:            body,
		DateTimeCreated: now,
	}
	if err := s.messageRepository.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	thread.LastMessageAt = now
	if err := s.threadRepository.UpdateByID(ctx, thread); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.notifyRecipient(ctx, thread, senderID, body)
	return message, nil
}

func (s *messageService) notifyRecipient(ctx context.Context, thread *messaging.Thread, senderID, body string) {
	if s.notifier == nil {
		return
	}
	recipient := thread.OtherParticipant(senderID)
	if recipient == "" {
		return
	}

	title := "New message"
	if sender, err := s.userRepository.GetByID(ctx, senderID); err == nil {
		title = "New message from " + sender.FullName()
	}
	if runes := []rune(title); len(runes) > 200 {
		title = string(runes[:200])
	}

	preview := []rune(body)
	if len(preview) > 120 {
		preview = append(preview[:117], '.', '.', '.')
	}

	_, err := s.notifier.Notify(ctx, &notifications.NotifyInput{
		UserID:           recipient,
		NotificationType: notifications.TypeNewMessage,
		Title:            title,
		Body:             string(preview),
		RelatedID:        thread.ID,
	})
	if err != nil {
		s.logger.Warn("Failed to notify user ", recipient, ": ", err)
	}
}
