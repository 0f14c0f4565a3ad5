package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates the tenant repository.
func NewShopRepository(db *gorm.DB) ports.ShopRepository {
	return &shopRepository{db: db}
}

// UpsertByDomain inserts the shop or updates its mutable fields, keyed by the
// unique domain.
func (r *shopRepository) UpsertByDomain(ctx context.Context, shop *domain.Shop) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "domain"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"remote_id", "name", "email", "currency",
				"access_token", "scopes", "active", "updated_at",
			}),
		}).
		Create(shop).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityShop, Err: err}
	}
	return nil
}

func (r *shopRepository) GetByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	var shop domain.Shop
	err := r.db.WithContext(ctx).Where("domain = ?", shopDomain).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Entity: domain.EntityShop, Err: err}
	}
	return &shop, nil
}

func (r *shopRepository) TouchLastSynced(ctx context.Context, shopID int64) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Model(&domain.Shop{}).
		Where("id = ?", shopID).
		Update("last_synced_at", now).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityShop, Err: err}
	}
	return nil
}

// Deactivate marks a shop inactive, keeping its rows. Used when the app is
// uninstalled.
func (r *shopRepository) Deactivate(ctx context.Context, shopDomain string) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Shop{}).
		Where("domain = ?", shopDomain).
		Updates(map[string]any{"active": false, "access_token": ""}).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityShop, Err: err}
	}
	return nil
}
