package domain

import "time"

// WebhookSubscription is a subscription as it exists on the remote platform.
// The platform is the source of truth; subscriptions are never persisted
// locally beyond the reconciliation diff.
type WebhookSubscription struct {
	RemoteID    int64  `json:"remote_id"`
	Topic       string `json:"topic"`
	CallbackURL string `json:"callback_url"`
}

// Reconciliation outcome per desired topic.
const (
	TopicCreated = "created"
	TopicExists  = "exists"
	TopicFailed  = "failed"
)

// TopicResult is the per-topic outcome of one reconciliation pass.
type TopicResult struct {
	Topic  string `json:"topic"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// WebhookEvent is a verified webhook delivery received from the platform.
type WebhookEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Topic      string    `gorm:"size:64;index" json:"topic"`
	ShopDomain string    `gorm:"size:255;index" json:"shop_domain"`
	Payload    []byte    `gorm:"type:bytea" json:"payload"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
