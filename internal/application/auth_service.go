package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// DefaultScopes is the access the engine requests on install. Orders and
// customers are requested up front even though their sync is gated, so an
// operator can enable them without a re-auth.
var DefaultScopes = []string{
	"read_products",
	"read_customers",
	"read_orders",
}

// AuthService runs the OAuth install flow: it hands out authorization URLs
// with a single-use state value and turns callbacks into active shop rows.
type AuthService struct {
	admin    ports.AdminClient
	shops    ports.ShopRepository
	sessions *SessionStore
	logger   zerolog.Logger
}

func NewAuthService(admin ports.AdminClient, shops ports.ShopRepository, sessions *SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		admin:    admin,
		shops:    shops,
		sessions: sessions,
		logger:   logger,
	}
}

// Begin starts the install flow for a shop and returns the URL to redirect
// the merchant to. baseURL is the public base of this deployment; the
// callback lands on {baseURL}/auth/callback.
func (a *AuthService) Begin(ctx context.Context, shopDomain, baseURL, returnURL string) (string, error) {
	if !strings.HasSuffix(shopDomain, ".myshopify.com") {
		return "", fmt.Errorf("invalid shop domain %q: a *.myshopify.com domain is required", shopDomain)
	}

	state, err := a.sessions.Put(domain.Session{
		Shop:      shopDomain,
		Scopes:    DefaultScopes,
		ReturnURL: returnURL,
	})
	if err != nil {
		return "", fmt.Errorf("creating oauth session: %w", err)
	}

	redirectURI := strings.TrimRight(baseURL, "/") + "/auth/callback"
	authURL := a.admin.AuthorizeURL(shopDomain, DefaultScopes, redirectURI, state)

	a.logger.Info().
		Str("shop", shopDomain).
		Strs("scopes", DefaultScopes).
		Msg("OAuth flow started")
	return authURL, nil
}

// Complete validates the callback state, exchanges the code for an access
// token and upserts the shop row. The returned session carries the return
// URL the caller should redirect to.
func (a *AuthService) Complete(ctx context.Context, shopDomain, code, state string) (*domain.Shop, domain.Session, error) {
	session, ok := a.sessions.Take(state)
	if !ok {
		return nil, domain.Session{}, fmt.Errorf("unknown or expired oauth state")
	}
	if session.Shop != shopDomain {
		return nil, domain.Session{}, fmt.Errorf("oauth state was issued for %s, callback came from %s", session.Shop, shopDomain)
	}

	token, err := a.admin.ExchangeToken(ctx, shopDomain, code)
	if err != nil {
		return nil, domain.Session{}, fmt.Errorf("exchanging oauth code for %s: %w", shopDomain, err)
	}

	shop, err := a.shops.GetByDomain(ctx, shopDomain)
	if err != nil {
		return nil, domain.Session{}, err
	}
	if shop == nil {
		shop = &domain.Shop{Domain: shopDomain}
	}
	shop.AccessToken = token
	shop.Scopes = strings.Join(session.Scopes, ",")
	shop.Active = true
	if err := a.shops.UpsertByDomain(ctx, shop); err != nil {
		return nil, domain.Session{}, err
	}

	a.logger.Info().
		Str("shop", shopDomain).
		Msg("OAuth flow completed; shop connected")
	return shop, session, nil
}
