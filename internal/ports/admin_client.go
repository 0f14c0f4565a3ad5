package ports

import (
	"context"

	"storelens-shopify-sync/internal/domain"
)

// AdminClient is the remote read and webhook API of the platform. Paged
// operations take an opaque cursor ("" for the first page) and a page size;
// they return one edges+pageInfo envelope per call. Remote failures are
// surfaced verbatim as *domain.RemoteAPIError; the client never retries.
type AdminClient interface {
	// OAuth
	AuthorizeURL(shopDomain string, scopes []string, redirectURI string, state string) string
	ExchangeToken(ctx context.Context, shopDomain string, code string) (string, error)

	// Reads
	GetShop(ctx context.Context, sc domain.SyncContext) (*domain.RemoteShop, error)
	ProductsPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteProduct], error)
	CollectionsPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteCollection], error)
	CustomersPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteCustomer], error)
	OrdersPage(ctx context.Context, sc domain.SyncContext, cursor string, first int) (*domain.Connection[domain.RemoteOrder], error)

	// Webhook subscriptions. The remote platform is authoritative; nothing
	// is cached locally.
	ListWebhooks(ctx context.Context, shopDomain, accessToken string) ([]domain.WebhookSubscription, error)
	CreateWebhook(ctx context.Context, shopDomain, accessToken, topic, address string) (*domain.WebhookSubscription, error)
	DeleteWebhook(ctx context.Context, shopDomain, accessToken string, webhookID int64) error

	// VerifyWebhook checks the HMAC signature of a webhook delivery.
	VerifyWebhook(payload []byte, hmacHeader string) bool
}
