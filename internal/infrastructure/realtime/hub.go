package realtime

import (
	"context"
	"sort"
	"sync"

	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

// Message types pushed over the websocket
const (
	MessageTypeNotification = "notification"
	MessageTypeAnnouncement = "announcement"
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
)

// Message is the envelope written to websocket clients
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// envelope targets a message at one user's connections, or at every
// connection when UserID is empty.
type envelope struct {
	UserID  string
	Message Message
}

// Hub maintains the set of active clients keyed by user ID and fans
// messages out to them. It implements notifications.Broadcaster: pushes
// never block and are dropped when the hub is saturated.
type Hub struct {
	clients    map[string]map[*Client]bool
	broadcast  chan envelope
	Register   chan *Client
	Unregister chan *Client
	logger     logger.Logger
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan envelope, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes client lifecycle events and broadcasts until the context
// is canceled, then closes every remaining client and returns ctx.Err().
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			closed := h.closeAllClients()
			h.logger.Info("Websocket hub stopped, closed ", closed, " clients")
			return ctx.Err()

		case client := <-h.Register:
			h.addClient(client)

		case client := <-h.Unregister:
			h.removeClient(client)

		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

// Push sends the payload to every live connection of the user. It
// satisfies notifications.Broadcaster and never blocks the caller.
func (h *Hub) Push(userID string, payload interface{}) {
	h.enqueue(envelope{
		UserID:  userID,
		Message: Message{Type: MessageTypeNotification, Data: payload},
	})
}

// PushAll sends a payload to every connected client regardless of user.
func (h *Hub) PushAll(messageType string, payload interface{}) {
	h.enqueue(envelope{
		Message: Message{Type: messageType, Data: payload},
	})
}

func (h *Hub) enqueue(env envelope) {
	select {
	case h.broadcast <- env:
	default:
		h.logger.Warn("Broadcast channel full, dropping ", env.Message.Type, " message")
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	total := h.countLocked()
	h.mu.Unlock()

	h.logger.Info("Websocket client connected for user ", client.userID, ", total clients ", total)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if set, ok := h.clients[client.userID]; ok && set[client] {
		delete(set, client)
		close(client.send)
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	total := h.countLocked()
	h.mu.Unlock()

	h.logger.Info("Websocket client disconnected for user ", client.userID, ", total clients ", total)
}

// deliver fans an envelope out to its target connections. Clients whose
// send buffer is full are dropped so one slow reader cannot stall the hub.
func (h *Hub) deliver(env envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var targets []*Client
	if env.UserID == "" {
		for _, set := range h.clients {
			for client := range set {
				targets = append(targets, client)
			}
		}
	} else {
		for client := range h.clients[env.UserID] {
			targets = append(targets, client)
		}
	}

	// Sorted by client id so delivery order is stable
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].id < targets[j].id
	})

	for _, client := range targets {
		select {
		case client.send <- env.Message:
		default:
			delete(h.clients[client.userID], client)
			close(client.send)
			if len(h.clients[client.userID]) == 0 {
				delete(h.clients, client.userID)
			}
		}
	}
}

func (h *Hub) closeAllClients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	closed := 0
	for userID, set := range h.clients {
		for client := range set {
			close(client.send)
			closed++
		}
		delete(h.clients, userID)
	}
	return closed
}

// ClientCount returns the number of connected clients across all users
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.countLocked()
}

// UserClientCount returns the number of live connections for one user
func (h *Hub) UserClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) countLocked() int {
	total := 0
	for _, set := range h.clients {
		total += len(set)
	}
	return total
}
