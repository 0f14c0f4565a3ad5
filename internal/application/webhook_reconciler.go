package application

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

// DefaultTopics is the closed set of webhook topics the engine keeps
// registered on every connected shop.
var DefaultTopics = []string{
	"products/create",
	"products/update",
	"app/uninstalled",
	"app/scopes_update",
}

// WebhookPath is the route that receives platform deliveries. The reconciler
// registers every subscription at this path so the router and the remote
// callbacks cannot drift apart; the topic travels in the X-Shopify-Topic
// header, not the URL.
const WebhookPath = "/webhooks/shopify"

// WebhookReconciler converges a shop's remote webhook subscriptions to the
// desired set. The remote platform is authoritative: every pass lists what
// exists there, deletes any subscription pointing at an old base URL, and
// creates what is missing. A second pass against an unchanged base URL
// performs zero writes.
type WebhookReconciler struct {
	admin    ports.AdminClient
	settings ports.SettingRepository
	logger   zerolog.Logger
	metrics  *Metrics
	topics   []string
}

// NewWebhookReconciler creates a reconciler over the default topic set.
func NewWebhookReconciler(admin ports.AdminClient, settings ports.SettingRepository, logger zerolog.Logger, metrics *Metrics) *WebhookReconciler {
	return &WebhookReconciler{
		admin:    admin,
		settings: settings,
		logger:   logger,
		metrics:  metrics,
		topics:   DefaultTopics,
	}
}

// BaseURL resolves the public base URL for webhook callbacks: the stored
// setting wins, the APP_URL environment variable is the fallback, and with
// neither set reconciliation cannot run.
func (r *WebhookReconciler) BaseURL(ctx context.Context) (string, error) {
	value, err := r.settings.Get(ctx, domain.SettingWebhookBaseURL)
	if err != nil {
		return "", err
	}
	if value == "" {
		value = os.Getenv("APP_URL")
	}
	if value == "" {
		return "", fmt.Errorf("no webhook base URL configured: set it via the settings endpoint or the APP_URL environment variable")
	}
	return strings.TrimRight(value, "/"), nil
}

// UpdateBaseURL validates and stores a new base URL. Callers are expected to
// re-run reconciliation afterwards so remote callbacks follow.
func (r *WebhookReconciler) UpdateBaseURL(ctx context.Context, baseURL string) error {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid base URL %q: an absolute http(s) URL is required", baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: an absolute http(s) URL is required", baseURL)
	}
	return r.settings.Set(ctx, domain.SettingWebhookBaseURL, strings.TrimRight(baseURL, "/"))
}

// callbackURL builds the delivery endpoint under the base URL.
func callbackURL(baseURL string) string {
	return baseURL + WebhookPath
}

// Reconcile runs one convergence pass for the shop. Any subscription whose
// callback does not point at the current base URL is stale and deleted,
// whatever its topic; deletes are best-effort and a failed one is logged
// without stopping the pass. Each desired topic without a current
// subscription is then created. A topic's create failure is recorded in its
// result and does not stop the remaining topics.
func (r *WebhookReconciler) Reconcile(ctx context.Context, shopDomain, accessToken, baseURL string) ([]domain.TopicResult, error) {
	existing, err := r.admin.ListWebhooks(ctx, shopDomain, accessToken)
	if err != nil {
		return nil, fmt.Errorf("listing webhooks for %s: %w", shopDomain, err)
	}

	current := make(map[string]bool, len(r.topics))
	for _, sub := range existing {
		if strings.Contains(sub.CallbackURL, baseURL) {
			current[sub.Topic] = true
			continue
		}
		// Points at an old deployment. Topics no longer in the desired set
		// are swept here too.
		if err := r.admin.DeleteWebhook(ctx, shopDomain, accessToken, sub.RemoteID); err != nil {
			r.logger.Error().
				Err(err).
				Str("shop", shopDomain).
				Str("topic", sub.Topic).
				Int64("webhook_id", sub.RemoteID).
				Msg("Failed to delete stale webhook")
			continue
		}
		r.metrics.ReconcileActions.WithLabelValues("delete").Inc()
		r.logger.Info().
			Str("shop", shopDomain).
			Str("topic", sub.Topic).
			Str("stale_url", sub.CallbackURL).
			Msg("Deleted stale webhook")
	}

	results := make([]domain.TopicResult, 0, len(r.topics))
	for _, topic := range r.topics {
		results = append(results, r.ensureTopic(ctx, shopDomain, accessToken, topic, callbackURL(baseURL), current[topic]))
	}
	return results, nil
}

func (r *WebhookReconciler) ensureTopic(ctx context.Context, shopDomain, accessToken, topic, address string, current bool) domain.TopicResult {
	if current {
		return domain.TopicResult{Topic: topic, Status: domain.TopicExists}
	}

	if _, err := r.admin.CreateWebhook(ctx, shopDomain, accessToken, topic, address); err != nil {
		r.logger.Error().
			Err(err).
			Str("shop", shopDomain).
			Str("topic", topic).
			Msg("Failed to create webhook")
		return domain.TopicResult{Topic: topic, Status: domain.TopicFailed, Error: err.Error()}
	}
	r.metrics.ReconcileActions.WithLabelValues("create").Inc()
	r.logger.Info().
		Str("shop", shopDomain).
		Str("topic", topic).
		Str("url", address).
		Msg("Created webhook")
	return domain.TopicResult{Topic: topic, Status: domain.TopicCreated}
}
