// Package shopify adapts the platform's Admin APIs: the GraphQL read API
// consumed by the sync engine and the REST webhook/OAuth surface.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
)

// DefaultAPIVersion is the Admin API version all requests are pinned to.
const DefaultAPIVersion = "2024-10"

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// gql is the transport under every paged read: one POST per page against the
// shop's GraphQL endpoint. It enforces the client-side timeout and never
// retries. Remote failures surface verbatim as *domain.RemoteAPIError and
// the caller decides whether to re-invoke.
type gql struct {
	http       *resty.Client
	apiVersion string
	baseURL    string // overrides https://{shop} when set (tests)
	logger     zerolog.Logger
}

func newGQL(logger zerolog.Logger) *gql {
	return &gql{
		http:       resty.New().SetTimeout(30 * time.Second),
		apiVersion: DefaultAPIVersion,
		logger:     logger,
	}
}

func (g *gql) endpoint(shopDomain string) string {
	base := g.baseURL
	if base == "" {
		base = "https://" + shopDomain
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", strings.TrimSuffix(base, "/"), g.apiVersion)
}

// run executes one GraphQL operation and unmarshals the data payload into
// out.
func (g *gql) run(ctx context.Context, sc domain.SyncContext, operation, query string, vars map[string]any, out any) error {
	body := graphqlRequest{Query: query, Variables: vars}

	resp, err := g.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Shopify-Access-Token", sc.AccessToken).
		SetBody(body).
		Post(g.endpoint(sc.ShopDomain))
	if err != nil {
		return &domain.RemoteAPIError{Operation: operation, Message: err.Error(), Err: err}
	}
	if resp.StatusCode() != 200 {
		return &domain.RemoteAPIError{
			Operation:  operation,
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(resp.String()),
		}
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return &domain.RemoteAPIError{Operation: operation, Message: "malformed response body", Err: err}
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return &domain.RemoteAPIError{Operation: operation, Message: strings.Join(msgs, "; ")}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &domain.RemoteAPIError{Operation: operation, Message: "malformed data payload", Err: err}
	}

	g.logger.Debug().
		Str("operation", operation).
		Str("shop", sc.ShopDomain).
		Msg("GraphQL operation completed")
	return nil
}
