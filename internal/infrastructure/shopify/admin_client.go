package shopify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// Client implements ports.AdminClient. Paged reads go through the GraphQL
// endpoint; OAuth and the webhook subscription surface go through the
// go-shopify REST client.
type Client struct {
	app    goshopify.App
	gql    *gql
	logger zerolog.Logger
}

// NewClient creates a Shopify admin client adapter.
func NewClient(apiKey, apiSecret string, logger zerolog.Logger) *Client {
	return &Client{
		app:    goshopify.App{ApiKey: apiKey, ApiSecret: apiSecret},
		gql:    newGQL(logger),
		logger: logger,
	}
}

// NewClientWithBaseURL pins all GraphQL traffic to a fixed base URL instead
// of https://{shop}. Used by tests against a fixture server.
func NewClientWithBaseURL(apiKey, apiSecret, baseURL string, logger zerolog.Logger) *Client {
	c := NewClient(apiKey, apiSecret, logger)
	c.gql.baseURL = baseURL
	return c
}

var _ ports.AdminClient = (*Client)(nil)

func (c *Client) rest(shopDomain, accessToken string) (*goshopify.Client, error) {
	client, err := goshopify.NewClient(c.app, shopDomain, accessToken)
	if err != nil {
		return nil, &domain.RemoteAPIError{Operation: "client", Message: err.Error(), Err: err}
	}
	return client, nil
}

// AuthorizeURL builds the OAuth authorization URL. Scopes are joined with
// commas, no spaces, the way the platform expects them.
func (c *Client) AuthorizeURL(shopDomain string, scopes []string, redirectURI string, state string) string {
	return fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shopDomain,
		c.app.ApiKey,
		url.QueryEscape(strings.Join(scopes, ",")),
		url.QueryEscape(redirectURI),
		url.QueryEscape(state),
	)
}

// ExchangeToken exchanges the authorization code for an access token.
func (c *Client) ExchangeToken(ctx context.Context, shopDomain string, code string) (string, error) {
	token, err := c.app.GetAccessToken(ctx, shopDomain, code)
	if err != nil {
		return "", &domain.RemoteAPIError{Operation: "oauth/access_token", Message: err.Error(), Err: err}
	}
	return token, nil
}

// ListWebhooks fetches every subscription configured on the shop.
func (c *Client) ListWebhooks(ctx context.Context, shopDomain, accessToken string) ([]domain.WebhookSubscription, error) {
	client, err := c.rest(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	webhooks, err := client.Webhook.List(ctx, nil)
	if err != nil {
		return nil, &domain.RemoteAPIError{Operation: "webhooks/list", Message: err.Error(), Err: err}
	}
	subs := make([]domain.WebhookSubscription, 0, len(webhooks))
	for _, wh := range webhooks {
		subs = append(subs, domain.WebhookSubscription{
			RemoteID:    int64(wh.Id),
			Topic:       wh.Topic,
			CallbackURL: wh.Address,
		})
	}
	return subs, nil
}

// CreateWebhook registers a json-format subscription for a topic.
func (c *Client) CreateWebhook(ctx context.Context, shopDomain, accessToken, topic, address string) (*domain.WebhookSubscription, error) {
	client, err := c.rest(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	created, err := client.Webhook.Create(ctx, goshopify.Webhook{
		Topic:   topic,
		Address: address,
		Format:  "json",
	})
	if err != nil {
		return nil, &domain.RemoteAPIError{Operation: "webhooks/create", Message: err.Error(), Err: err}
	}
	return &domain.WebhookSubscription{
		RemoteID:    int64(created.Id),
		Topic:       created.Topic,
		CallbackURL: created.Address,
	}, nil
}

// DeleteWebhook removes one subscription by its remote id.
func (c *Client) DeleteWebhook(ctx context.Context, shopDomain, accessToken string, webhookID int64) error {
	client, err := c.rest(shopDomain, accessToken)
	if err != nil {
		return err
	}
	if err := client.Webhook.Delete(ctx, uint64(webhookID)); err != nil {
		return &domain.RemoteAPIError{Operation: "webhooks/delete", Message: err.Error(), Err: err}
	}
	return nil
}

// VerifyWebhook checks the base64 HMAC-SHA256 signature the platform attaches
// to every delivery.
func (c *Client) VerifyWebhook(payload []byte, hmacHeader string) bool {
	if hmacHeader == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.app.ApiSecret))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(hmacHeader))
}
