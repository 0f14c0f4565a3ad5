package application

import (
	"context"

	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
)

// WebhookHandler processes verified webhook events for the topics it claims.
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookDispatcher routes verified events to registered handlers. An event
// whose topic no handler claims is logged and dropped; it was still
// audit-logged and published upstream.
type WebhookDispatcher struct {
	handlers []WebhookHandler
	logger   zerolog.Logger
}

func NewWebhookDispatcher(logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{logger: logger}
}

// RegisterHandler adds a handler. Registration order is dispatch order.
func (d *WebhookDispatcher) RegisterHandler(handler WebhookHandler) {
	d.handlers = append(d.handlers, handler)
}

// Dispatch hands the event to every handler that claims its topic. The first
// handler error is returned; later handlers for the same event still run.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	handled := false
	var firstErr error
	for _, handler := range d.handlers {
		if !handler.CanHandle(event.Topic) {
			continue
		}
		handled = true
		if err := handler.Handle(ctx, event); err != nil {
			d.logger.Error().
				Err(err).
				Str("topic", event.Topic).
				Str("shop", event.ShopDomain).
				Msg("Webhook handler failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if !handled {
		d.logger.Warn().
			Str("topic", event.Topic).
			Str("shop", event.ShopDomain).
			Msg("No handler registered for webhook topic")
	}
	return firstErr
}
