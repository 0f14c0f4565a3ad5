package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

type syncLogRepository struct {
	db *gorm.DB
}

// NewSyncLogRepository creates the sync log repository.
func NewSyncLogRepository(db *gorm.DB) ports.SyncLogRepository {
	return &syncLogRepository{db: db}
}

func (r *syncLogRepository) Create(ctx context.Context, log *domain.SyncLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return &domain.PersistenceError{Entity: log.EntityType, Err: err}
	}
	return nil
}

func (r *syncLogRepository) Update(ctx context.Context, log *domain.SyncLog) error {
	err := r.db.WithContext(ctx).
		Model(&domain.SyncLog{}).
		Where("id = ?", log.ID).
		Updates(map[string]any{
			"status":            log.Status,
			"records_processed": log.RecordsProcessed,
			"records_total":     log.RecordsTotal,
			"completed_at":      log.CompletedAt,
			"error_message":     log.ErrorMessage,
		}).Error
	if err != nil {
		return &domain.PersistenceError{Entity: log.EntityType, Err: err}
	}
	return nil
}

func (r *syncLogRepository) Latest(ctx context.Context, shopID int64, entity domain.EntityType) (*domain.SyncLog, error) {
	var log domain.SyncLog
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND entity_type = ?", shopID, entity).
		Order("started_at DESC").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Entity: entity, Err: err}
	}
	return &log, nil
}

// LatestPerEntity returns the most recent log row for each entity type of a
// shop, the durable record surfaced verbatim to callers and dashboards.
func (r *syncLogRepository) LatestPerEntity(ctx context.Context, shopID int64) ([]domain.SyncLog, error) {
	var logs []domain.SyncLog
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (entity_type) *
		     FROM sync_logs
		     WHERE shop_id = ?
		     ORDER BY entity_type, started_at DESC`, shopID).
		Scan(&logs).Error
	if err != nil {
		return nil, &domain.PersistenceError{Entity: "", Err: err}
	}
	return logs, nil
}
