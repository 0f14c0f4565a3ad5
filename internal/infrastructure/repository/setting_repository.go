package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates the key/value settings repository.
func NewSettingRepository(db *gorm.DB) ports.SettingRepository {
	return &settingRepository{db: db}
}

// Get returns "" when the key has never been set.
func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	var setting domain.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", &domain.PersistenceError{Entity: "settings", Err: err}
	}
	return setting.Value, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&domain.Setting{Key: key, Value: value}).Error
	if err != nil {
		return &domain.PersistenceError{Entity: "settings", Err: err}
	}
	return nil
}

type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates the webhook delivery audit log.
func NewWebhookEventRepository(db *gorm.DB) ports.WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

func (r *webhookEventRepository) Log(ctx context.Context, event *domain.WebhookEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return &domain.PersistenceError{Entity: "webhook_events", Err: err}
	}
	return nil
}
