package webhook_handlers

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// AppUninstalledHandler deactivates a shop when the merchant removes the app.
// The shop row and its synced data stay for audit; only the access token is
// cleared, since Shopify revokes it anyway.
type AppUninstalledHandler struct {
	logger zerolog.Logger
	shops  ports.ShopRepository
}

func NewAppUninstalledHandler(logger zerolog.Logger, shops ports.ShopRepository) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		logger: logger,
		shops:  shops,
	}
}

func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == "app/uninstalled"
}

// Handle marks the shop inactive. The delivery payload is the shop record;
// it fills in the domain when the header is missing.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shopDomain := event.ShopDomain
	if shopDomain == "" {
		var payload struct {
			Domain          string `json:"domain"`
			MyshopifyDomain string `json:"myshopify_domain"`
		}
		if err := json.Unmarshal(event.Payload, &payload); err == nil {
			shopDomain = payload.MyshopifyDomain
			if shopDomain == "" {
				shopDomain = payload.Domain
			}
		}
	}
	if shopDomain == "" {
		h.logger.Warn().Msg("App uninstalled webhook without a shop domain; ignoring")
		return nil
	}

	if err := h.shops.Deactivate(ctx, shopDomain); err != nil {
		return err
	}
	h.logger.Info().
		Str("shop", shopDomain).
		Msg("Shop deactivated after app uninstall")
	return nil
}
