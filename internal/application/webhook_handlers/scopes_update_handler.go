package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// ScopesUpdateHandler records the granted access scopes when the merchant
// approves a scope change, so later sync runs know what they may read.
type ScopesUpdateHandler struct {
	logger zerolog.Logger
	shops  ports.ShopRepository
}

func NewScopesUpdateHandler(logger zerolog.Logger, shops ports.ShopRepository) *ScopesUpdateHandler {
	return &ScopesUpdateHandler{
		logger: logger,
		shops:  shops,
	}
}

func (h *ScopesUpdateHandler) CanHandle(topic string) bool {
	return topic == "app/scopes_update"
}

func (h *ScopesUpdateHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload struct {
		Current []string `json:"current"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("parsing scopes update webhook payload: %w", err)
	}

	shop, err := h.shops.GetByDomain(ctx, event.ShopDomain)
	if err != nil {
		return err
	}
	if shop == nil {
		h.logger.Warn().
			Str("shop", event.ShopDomain).
			Msg("Scopes update webhook for unknown shop; ignoring")
		return nil
	}

	shop.Scopes = strings.Join(payload.Current, ",")
	if err := h.shops.UpsertByDomain(ctx, shop); err != nil {
		return err
	}
	h.logger.Info().
		Str("shop", event.ShopDomain).
		Str("scopes", shop.Scopes).
		Msg("Shop scopes updated")
	return nil
}
