package domain

import "time"

// Shop represents one connected merchant store (the tenant). Every other
// synced entity hangs off a shop by foreign key. A shop row is created on the
// first OAuth callback and refreshed on every session bootstrap and at sync
// completion.
type Shop struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID     int64      `gorm:"uniqueIndex" json:"remote_id"`
	Domain       string     `gorm:"size:255;uniqueIndex;not null" json:"domain"`
	Name         string     `gorm:"size:255" json:"name"`
	Email        string     `gorm:"size:255" json:"email"`
	Currency     string     `gorm:"size:10" json:"currency"`
	AccessToken  string     `gorm:"size:512" json:"-"`
	Scopes       string     `gorm:"size:512" json:"scopes"`
	Active       bool       `gorm:"default:true" json:"active"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}

// SyncContext carries the immutable per-run state of one sync run. It is
// built once the shop row is known and threaded explicitly through every
// component call; nothing in a run mutates it.
type SyncContext struct {
	ShopID      int64
	ShopDomain  string
	AccessToken string
	BaseURL     string
	StartedAt   time.Time
}

// Session represents an OAuth session created when a merchant starts the
// install flow. The state value is the CSRF token echoed back on callback.
type Session struct {
	State     string
	Shop      string
	Scopes    []string
	ReturnURL string
	ExpiresAt time.Time
}
