package realtime

import (
	"context"
	"time"

	"github.com/wilsonA2000/verihome/internal/infrastructure/redisclient"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

// publishTimeout bounds a single redis publish fired from Push.
const publishTimeout = 2 * time.Second

// Fanout pushes to the local hub and republishes over redis so other
// instances can reach their own connected clients. With a nil redis client
// it degrades to local-only delivery.
type Fanout struct {
	hub    *Hub
	redis  *redisclient.Client
	logger logger.Logger
}

// NewFanout creates a new Fanout over the hub and an optional redis client.
func NewFanout(hub *Hub, redis *redisclient.Client, logger logger.Logger) *Fanout {
	return &Fanout{
		hub:    hub,
		redis:  redis,
		logger: logger,
	}
}

// Push delivers the payload to the user's local connections and republishes
// it for the other instances. Push never blocks the caller.
func (f *Fanout) Push(userID string, payload interface{}) {
	f.hub.Push(userID, payload)
	if f.redis == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := f.redis.PublishNotification(ctx, userID, payload); err != nil {
			f.logger.Warn("Failed to publish notification fan-out: ", err)
		}
	}()
}

// Run forwards fan-out events published by other instances into the local
// hub until ctx is canceled.
func (f *Fanout) Run(ctx context.Context) error {
	if f.redis == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.redis.SubscribeNotifications(ctx, f.hub.Push)
}
