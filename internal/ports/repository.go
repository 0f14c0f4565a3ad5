package ports

import (
	"context"

	"storelens-shopify-sync/internal/domain"
)

// Upsert semantics throughout: insert when no row carries the remote key,
// otherwise update the existing row's mutable fields. The local primary key
// and creation timestamp are never touched, and a repeated call with
// identical fields is a no-op.

// ShopRepository persists tenants.
type ShopRepository interface {
	UpsertByDomain(ctx context.Context, shop *domain.Shop) error
	GetByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error)
	TouchLastSynced(ctx context.Context, shopID int64) error
	Deactivate(ctx context.Context, shopDomain string) error
}

// CatalogRepository persists products, variants, images and collections.
type CatalogRepository interface {
	UpsertProduct(ctx context.Context, product *domain.Product) error
	UpsertVariant(ctx context.Context, variant *domain.ProductVariant) error
	UpsertImage(ctx context.Context, image *domain.ProductImage) error
	UpsertCollection(ctx context.Context, collection *domain.Collection) error
	LinkCollectionProduct(ctx context.Context, collectionID, productID int64) error

	// Local-id lookups by remote key; (0, nil) when the row is absent.
	ProductIDByRemoteID(ctx context.Context, remoteID int64) (int64, error)
	VariantIDByRemoteID(ctx context.Context, remoteID int64) (int64, error)
}

// CustomerRepository persists customers and their addresses.
type CustomerRepository interface {
	UpsertCustomer(ctx context.Context, customer *domain.Customer) error
	UpsertAddress(ctx context.Context, address *domain.CustomerAddress) error
	CustomerIDByRemoteID(ctx context.Context, remoteID int64) (int64, error)
}

// OrderRepository persists orders, line items and order addresses.
type OrderRepository interface {
	UpsertOrder(ctx context.Context, order *domain.Order) error
	UpsertItem(ctx context.Context, item *domain.OrderItem) error
	UpsertAddress(ctx context.Context, address *domain.OrderAddress) error
}

// SyncLogRepository records sync attempts. Rows are created once per attempt
// and mutated in place; they are never deleted.
type SyncLogRepository interface {
	Create(ctx context.Context, log *domain.SyncLog) error
	Update(ctx context.Context, log *domain.SyncLog) error
	Latest(ctx context.Context, shopID int64, entity domain.EntityType) (*domain.SyncLog, error)
	LatestPerEntity(ctx context.Context, shopID int64) ([]domain.SyncLog, error)
}

// SettingRepository is a small key/value store for operator-set
// configuration, currently just the webhook base URL.
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// WebhookEventRepository audit-logs received webhook deliveries.
type WebhookEventRepository interface {
	Log(ctx context.Context, event *domain.WebhookEvent) error
}

// EventPublisher fans verified webhook events out to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.WebhookEvent) error
}
