// Package pubsub fans verified webhook events out to downstream consumers
// over a Redis channel.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// Channel is the Redis channel webhook events are published on.
const Channel = "webhook-events"

type redisPublisher struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisPublisher creates a publisher over the given Redis client.
func NewRedisPublisher(client *redis.Client, logger zerolog.Logger) ports.EventPublisher {
	return &redisPublisher{client: client, logger: logger}
}

type wireEvent struct {
	Topic      string          `json:"topic"`
	ShopDomain string          `json:"shop_domain"`
	Payload    json.RawMessage `json:"payload"`
}

func (p *redisPublisher) Publish(ctx context.Context, event *domain.WebhookEvent) error {
	msg, err := json.Marshal(wireEvent{
		Topic:      event.Topic,
		ShopDomain: event.ShopDomain,
		Payload:    event.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode webhook event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel, msg).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event: %w", err)
	}
	p.logger.Debug().
		Str("topic", event.Topic).
		Str("shop", event.ShopDomain).
		Msg("Webhook event published")
	return nil
}

// NopPublisher drops events. Used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *domain.WebhookEvent) error {
	return nil
}
