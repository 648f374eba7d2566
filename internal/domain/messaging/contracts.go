package messaging

import "context"

// StartThreadInput carries the fields for opening a conversation.
type StartThreadInput struct {
	InitiatorID string
	RecipientID string
	Subject     string
	PropertyID  string
	Body        string
}

// MessageService defines methods for two-party conversations
type MessageService interface {
	// StartThread opens a conversation between two users and stores the
	// first message. Reuses an existing thread for the same pair and
	// property when one exists.
	StartThread(ctx context.Context, input *StartThreadInput) (*Thread, *Message, error)
	// GetThread retrieves a thread the user participates in.
	GetThread(ctx context.Context, threadID, userID string) (*Thread, error)
	// ListThreads retrieves the user's threads, most recently active first.
	ListThreads(ctx context.Context, query *ThreadQuery) ([]*Thread, error)
	// Send appends a message to a thread the sender participates in.
	Send(ctx context.Context, threadID, senderID, body string) (*Message, error)
	// ListMessages retrieves messages of a thread the user participates in.
	ListMessages(ctx context.Context, query *MessageQuery, userID string) ([]*Message, error)
	// MarkRead marks every message addressed to the user in the thread as
	// read and returns the number of messages updated.
	MarkRead(ctx context.Context, threadID, userID string) (int, error)
	// UnreadCount returns the number of unread messages addressed to the
	// user across all threads.
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// ThreadRepository defines methods for thread persistence
type ThreadRepository interface {
	// Create stores a new thread.
	Create(ctx context.Context, thread *Thread) error
	// GetByID retrieves a thread by its ID.
	GetByID(ctx context.Context, threadID string) (*Thread, error)
	// GetByParticipants returns the thread between the two users for the
	// property, or ErrThreadNotFound. An empty propertyID matches threads
	// without a property.
	GetByParticipants(ctx context.Context, userA, userB, propertyID string) (*Thread, error)
	// List retrieves threads matching the query filters.
	List(ctx context.Context, query *ThreadQuery) ([]*Thread, error)
	// UpdateByID updates the stored thread.
	UpdateByID(ctx context.Context, thread *Thread) error
}

// MessageRepository defines methods for message persistence
type MessageRepository interface {
	// Create stores a new message.
	Create(ctx context.Context, message *Message) error
	// List retrieves messages matching the query filters, oldest first.
	List(ctx context.Context, query *MessageQuery) ([]*Message, error)
	// MarkThreadRead marks the thread's messages not sent by userID as read
	// and returns the number of rows updated.
	MarkThreadRead(ctx context.Context, threadID, userID string) (int, error)
	// CountUnread returns the number of unread messages addressed to userID
	// across the user's threads.
	CountUnread(ctx context.Context, userID string) (int64, error)
}
