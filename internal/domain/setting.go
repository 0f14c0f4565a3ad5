package domain

import "time"

// Setting keys used by the engine.
const (
	SettingWebhookBaseURL = "webhook_base_url"
)

// Setting is one operator-set configuration value.
type Setting struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"size:128;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
