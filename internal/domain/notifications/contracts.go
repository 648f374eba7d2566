package notifications

import "context"

// NotifyInput carries the fields for raising a notification.
type NotifyInput struct {
	UserID           string
	NotificationType string
	Title            string
	Body             string
	RelatedID        string
}

// NotificationService defines methods for in-app notifications
type NotificationService interface {
	// Notify stores a notification and pushes it to the user's live
	// websocket connections.
	Notify(ctx context.Context, input *NotifyInput) (*Notification, error)
	// List retrieves the user's notifications, newest first.
	List(ctx context.Context, query *NotificationQuery) ([]*Notification, error)
	// MarkRead marks one notification of the user as read.
	MarkRead(ctx context.Context, notificationID, userID string) error
	// MarkAllRead marks all of the user's notifications as read and returns
	// the number updated.
	MarkAllRead(ctx context.Context, userID string) (int, error)
	// UnreadCount returns the number of unread notifications for the user.
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// NotificationRepository defines methods for notification persistence
type NotificationRepository interface {
	// Create stores a new notification.
	Create(ctx context.Context, notification *Notification) error
	// GetByID retrieves a notification by its ID.
	GetByID(ctx context.Context, notificationID string) (*Notification, error)
	// List retrieves notifications matching the query filters.
	List(ctx context.Context, query *NotificationQuery) ([]*Notification, error)
	// UpdateByID updates the stored notification.
	UpdateByID(ctx context.Context, notification *Notification) error
	// MarkAllRead marks the user's unread notifications as read and returns
	// the number of rows updated.
	MarkAllRead(ctx context.Context, userID string) (int, error)
	// CountUnread returns the number of unread notifications for the user.
	CountUnread(ctx context.Context, userID string) (int64, error)
}

// Broadcaster pushes a payload to a user's live connections. Implementations
// must not block; delivery is best effort.
type Broadcaster interface {
	// Push sends the payload to every live connection of the user.
	Push(userID string, payload interface{})
}
