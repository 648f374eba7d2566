package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

const (
	notifyChannel      = "verihome:notify"
	monitorSnapshotKey = "verihome:monitor:snapshot"
)

// pushEvent is the wire format for cross-instance notification fan-out.
// Origin carries the publishing instance ID so subscribers can skip
// events they already delivered locally.
type pushEvent struct {
	Origin  string      `json:"origin"`
	UserID  string      `json:"user_id"`
	Payload interface{} `json:"payload"`
}

// Client wraps the go-redis client used for cross-instance notification
// fan-out and monitor snapshot caching. New returns nil when Redis is not
// configured; callers must treat a nil client as "feature disabled".
type Client struct {
	*redis.Client
	instanceID string
	logger     logger.Logger
}

// New creates a new Redis client from the provided settings.
// Returns nil if the URL is empty (Redis not configured).
func New(settings *config.RedisSettings, logger logger.Logger) (*Client, error) {
	if settings.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	// Apply configuration overrides
	opts.PoolSize = settings.PoolSize
	opts.MinIdleConns = settings.MinIdleConns
	opts.DialTimeout = settings.DialTimeout
	opts.ReadTimeout = settings.ReadTimeout
	opts.WriteTimeout = settings.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("Connected to redis at ", opts.Addr)
	return &Client{
		Client:     client,
		instanceID: uuid.NewString(),
		logger:     logger,
	}, nil
}

// Health checks whether the Redis connection is alive
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// PublishNotification fans a user notification out to every API instance
func (c *Client) PublishNotification(ctx context.Context, userID string, payload interface{}) error {
	data, err := json.Marshal(pushEvent{
		Origin:  c.instanceID,
		UserID:  userID,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push event: %w", err)
	}
	return c.Publish(ctx, notifyChannel, data).Err()
}

// SubscribeNotifications forwards fan-out events from other instances to
// the push callback until the context is canceled. Events published by
// this instance are skipped since they were already delivered locally.
func (c *Client) SubscribeNotifications(ctx context.Context, push func(userID string, payload interface{})) error {
	sub := c.Subscribe(ctx, notifyChannel)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event pushEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				c.logger.Warn("Dropping malformed notification fan-out event: ", err)
				continue
			}
			if event.Origin == c.instanceID {
				continue
			}
			push(event.UserID, event.Payload)
		}
	}
}

// StoreMonitorSnapshot caches the latest performance snapshot with a TTL
func (c *Client) StoreMonitorSnapshot(ctx context.Context, snapshot interface{}, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal monitor snapshot: %w", err)
	}
	return c.Set(ctx, monitorSnapshotKey, data, ttl).Err()
}

// LoadMonitorSnapshot returns the cached snapshot as raw JSON, or nil
// when no snapshot is stored.
func (c *Client) LoadMonitorSnapshot(ctx context.Context) ([]byte, error) {
	data, err := c.Get(ctx, monitorSnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load monitor snapshot: %w", err)
	}
	return data, nil
}
