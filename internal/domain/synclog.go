package domain

import "time"

// EntityType is the closed set of syncable entity types. Orchestration is
// driven by a lookup table over these values, never by ad hoc string
// comparisons at call sites.
type EntityType string

const (
	EntityShop        EntityType = "shop"
	EntityProducts    EntityType = "products"
	EntityCustomers   EntityType = "customers"
	EntityOrders      EntityType = "orders"
	EntityCollections EntityType = "collections"
)

// SyncStatus is the lifecycle state of one sync attempt:
// started -> completed | failed.
type SyncStatus string

const (
	SyncStatusStarted   SyncStatus = "started"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncTypeInitial is the only sync type this engine performs.
const SyncTypeInitial = "initial"

// SyncLog is the durable per-entity-type record of one sync attempt. One row
// is created per attempt, mutated in place as it progresses and never
// deleted. CompletedAt is set if and only if the status is completed or
// failed; RecordsProcessed never decreases within a run.
type SyncLog struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID           int64      `gorm:"index;not null" json:"shop_id"`
	SyncType         string     `gorm:"size:32;not null" json:"sync_type"`
	EntityType       EntityType `gorm:"size:32;index;not null" json:"entity_type"`
	Status           SyncStatus `gorm:"size:16;not null" json:"status"`
	RecordsProcessed int        `gorm:"default:0" json:"records_processed"`
	RecordsTotal     int        `gorm:"default:0" json:"records_total"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	ErrorMessage     string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (SyncLog) TableName() string {
	return "sync_logs"
}

// InProgress reports whether this log row records a run that started but has
// not reached a terminal state. Used as the concurrent-run guard.
func (l *SyncLog) InProgress() bool {
	return l.Status == SyncStatusStarted && l.CompletedAt == nil
}
