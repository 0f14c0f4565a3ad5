package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// WebhookService processes a verified webhook delivery: audit-log it, fan it
// out to downstream consumers, then dispatch it to local handlers.
type WebhookService struct {
	events     ports.WebhookEventRepository
	publisher  ports.EventPublisher
	dispatcher *WebhookDispatcher
	logger     zerolog.Logger
}

func NewWebhookService(events ports.WebhookEventRepository, publisher ports.EventPublisher, dispatcher *WebhookDispatcher, logger zerolog.Logger) *WebhookService {
	return &WebhookService{
		events:     events,
		publisher:  publisher,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Process records and dispatches one delivery. A publish failure is logged
// and swallowed; a dispatch failure is returned so the platform redelivers.
func (w *WebhookService) Process(ctx context.Context, topic, shopDomain string, payload []byte, verified bool) error {
	event := &domain.WebhookEvent{
		Topic:      topic,
		ShopDomain: shopDomain,
		Payload:    payload,
		Verified:   verified,
	}
	if err := w.events.Log(ctx, event); err != nil {
		return fmt.Errorf("logging webhook event: %w", err)
	}
	if !verified {
		w.logger.Warn().
			Str("topic", topic).
			Str("shop", shopDomain).
			Msg("Unverified webhook recorded and dropped")
		return nil
	}

	if err := w.publisher.Publish(ctx, event); err != nil {
		w.logger.Error().
			Err(err).
			Str("topic", topic).
			Str("shop", shopDomain).
			Msg("Failed to publish webhook event")
	}

	return w.dispatcher.Dispatch(ctx, event)
}
