// Package repository implements the persistence ports on Postgres via gorm.
// Every upsert is keyed on the entity's remote-id unique index with
// ON CONFLICT DO UPDATE over the mutable columns only, so the local primary
// key and creation timestamp survive re-syncs untouched.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storelens-shopify-sync/internal/domain"
)

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&domain.Shop{},
		&domain.Product{},
		&domain.ProductVariant{},
		&domain.ProductImage{},
		&domain.Collection{},
		&domain.CollectionProduct{},
		&domain.Customer{},
		&domain.CustomerAddress{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.OrderAddress{},
		&domain.SyncLog{},
		&domain.WebhookEvent{},
		&domain.Setting{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

// idByRemoteID resolves a local row id from a remote key; (0, nil) when the
// row is absent so missing references degrade to null instead of failing.
func idByRemoteID(ctx context.Context, db *gorm.DB, model any, remoteID int64) (int64, error) {
	var id int64
	err := db.WithContext(ctx).
		Model(model).
		Select("id").
		Where("remote_id = ?", remoteID).
		Take(&id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
