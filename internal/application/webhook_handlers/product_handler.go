package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// productPayload is the REST-shaped product body Shopify delivers on the
// products/* topics. Ids here are plain numbers, unlike the Admin API gids.
type productPayload struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Vendor      string `json:"vendor"`
	Status      string `json:"status"`
	Variants    []struct {
		ID                int64  `json:"id"`
		Title             string `json:"title"`
		Price             string `json:"price"`
		SKU               string `json:"sku"`
		InventoryQuantity int    `json:"inventory_quantity"`
	} `json:"variants"`
	Images []struct {
		ID     int64  `json:"id"`
		Src    string `json:"src"`
		Alt    string `json:"alt"`
		Width  *int   `json:"width"`
		Height *int   `json:"height"`
	} `json:"images"`
}

// ProductHandler keeps the local catalog in step with product webhooks
// between full sync runs.
type ProductHandler struct {
	logger  zerolog.Logger
	shops   ports.ShopRepository
	catalog ports.CatalogRepository
}

func NewProductHandler(logger zerolog.Logger, shops ports.ShopRepository, catalog ports.CatalogRepository) *ProductHandler {
	return &ProductHandler{
		logger:  logger,
		shops:   shops,
		catalog: catalog,
	}
}

// CanHandle returns true for the product topics the engine subscribes to.
func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == "products/create" || topic == "products/update"
}

// Handle upserts the delivered product into the local catalog. Deliveries
// for unknown shops are dropped; the shop was never installed here.
func (h *ProductHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload productPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("parsing product webhook payload: %w", err)
	}

	shop, err := h.shops.GetByDomain(ctx, event.ShopDomain)
	if err != nil {
		return err
	}
	if shop == nil {
		h.logger.Warn().
			Str("shop", event.ShopDomain).
			Int64("productId", payload.ID).
			Msg("Product webhook for unknown shop; ignoring")
		return nil
	}

	product := &domain.Product{
		RemoteID: payload.ID,
		ShopID:   shop.ID,
		Title:    payload.Title,
		Handle:   payload.Handle,
		Vendor:   payload.Vendor,
		Status:   payload.Status,
	}
	if err := h.catalog.UpsertProduct(ctx, product); err != nil {
		return err
	}

	for _, v := range payload.Variants {
		variant := &domain.ProductVariant{
			RemoteID:          v.ID,
			ProductID:         product.ID,
			Title:             v.Title,
			SKU:               v.SKU,
			InventoryQuantity: v.InventoryQuantity,
		}
		if price, err := decimal.NewFromString(v.Price); err == nil {
			variant.Price = decimal.NullDecimal{Decimal: price, Valid: true}
		}
		if err := h.catalog.UpsertVariant(ctx, variant); err != nil {
			return err
		}
	}
	for _, img := range payload.Images {
		image := &domain.ProductImage{
			RemoteID:  img.ID,
			ProductID: product.ID,
			AltText:   img.Alt,
			Width:     img.Width,
			Height:    img.Height,
			SrcURL:    img.Src,
		}
		if err := h.catalog.UpsertImage(ctx, image); err != nil {
			return err
		}
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.ShopDomain).
		Int64("productId", payload.ID).
		Str("title", payload.Title).
		Msg("Product webhook applied")
	return nil
}
