package shopify_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/infrastructure/shopify"
)

func testContext() domain.SyncContext {
	return domain.SyncContext{
		ShopID:      1,
		ShopDomain:  "test.myshopify.com",
		AccessToken: "shpat_test",
	}
}

func TestProductsPage_ParsesConnection(t *testing.T) {
	var gotToken string
	var gotVars map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotVars = req.Variables

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"products": {
					"edges": [
						{"node": {"id": "gid://shopify/Product/101", "title": "Alpha",
							"variants": {"edges": [{"node": {"id": "gid://shopify/ProductVariant/201", "price": "10.00"}}],
								"pageInfo": {"hasNextPage": false, "endCursor": ""}},
							"images": {"edges": [], "pageInfo": {"hasNextPage": false, "endCursor": ""}}}}
					],
					"pageInfo": {"hasNextPage": true, "endCursor": "cur-1"}
				}
			}
		}`))
	}))
	defer server.Close()

	client := shopify.NewClientWithBaseURL("key", "secret", server.URL, zerolog.Nop())
	page, err := client.ProductsPage(context.Background(), testContext(), "cur-0", 50)
	require.NoError(t, err)

	require.Equal(t, "shpat_test", gotToken)
	require.Equal(t, float64(50), gotVars["first"])
	require.Equal(t, "cur-0", gotVars["after"])

	require.Len(t, page.Edges, 1)
	require.Equal(t, "gid://shopify/Product/101", page.Edges[0].Node.ID)
	require.Len(t, page.Edges[0].Node.Variants.Nodes(), 1)
	require.True(t, page.PageInfo.HasNextPage)
	require.Equal(t, "cur-1", page.PageInfo.EndCursor)
}

func TestProductsPage_FirstPageOmitsCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_, hasAfter := req.Variables["after"]
		require.False(t, hasAfter)

		w.Write([]byte(`{"data": {"products": {"edges": [], "pageInfo": {"hasNextPage": false, "endCursor": ""}}}}`))
	}))
	defer server.Close()

	client := shopify.NewClientWithBaseURL("key", "secret", server.URL, zerolog.Nop())
	page, err := client.ProductsPage(context.Background(), testContext(), "", 50)
	require.NoError(t, err)
	require.Empty(t, page.Edges)
	require.False(t, page.PageInfo.HasNextPage)
}

func TestGraphQL_HTTPErrorSurfacesVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := shopify.NewClientWithBaseURL("key", "secret", server.URL, zerolog.Nop())
	_, err := client.GetShop(context.Background(), testContext())
	require.Error(t, err)

	var apiErr *domain.RemoteAPIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "shop", apiErr.Operation)
}

func TestGraphQL_ErrorArraySurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": null, "errors": [{"message": "Throttled"}]}`))
	}))
	defer server.Close()

	client := shopify.NewClientWithBaseURL("key", "secret", server.URL, zerolog.Nop())
	_, err := client.CustomersPage(context.Background(), testContext(), "", 50)
	require.Error(t, err)

	var apiErr *domain.RemoteAPIError
	require.True(t, errors.As(err, &apiErr))
	require.Contains(t, apiErr.Message, "Throttled")
}

func TestAuthorizeURL(t *testing.T) {
	client := shopify.NewClient("key", "secret", zerolog.Nop())
	raw := client.AuthorizeURL("test.myshopify.com", []string{"read_products", "read_orders"},
		"https://app.example.com/auth/callback", "state123")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "test.myshopify.com", parsed.Host)
	require.Equal(t, "/admin/oauth/authorize", parsed.Path)
	require.Equal(t, "key", parsed.Query().Get("client_id"))
	require.Equal(t, "read_products,read_orders", parsed.Query().Get("scope"))
	require.Equal(t, "state123", parsed.Query().Get("state"))
}

func TestVerifyWebhook(t *testing.T) {
	client := shopify.NewClient("key", "secret", zerolog.Nop())
	payload := []byte(`{"id": 101}`)

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write(payload)
	valid := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	require.True(t, client.VerifyWebhook(payload, valid))
	require.False(t, client.VerifyWebhook(payload, "bogus"))
	require.False(t, client.VerifyWebhook(payload, ""))
	require.False(t, client.VerifyWebhook([]byte(`{"id": 102}`), valid))
}
