package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates the product and collection repository.
func NewCatalogRepository(db *gorm.DB) ports.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) UpsertProduct(ctx context.Context, product *domain.Product) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "handle", "vendor", "status",
				"remote_created_at", "remote_updated_at", "updated_at",
			}),
		}).
		Create(product).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityProducts, Err: err}
	}
	return nil
}

func (r *catalogRepository) UpsertVariant(ctx context.Context, variant *domain.ProductVariant) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_id", "title", "price", "sku", "inventory_quantity",
				"remote_created_at", "remote_updated_at", "updated_at",
			}),
		}).
		Create(variant).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityProducts, Err: err}
	}
	return nil
}

func (r *catalogRepository) UpsertImage(ctx context.Context, image *domain.ProductImage) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_id", "alt_text", "width", "height", "src_url", "updated_at",
			}),
		}).
		Create(image).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityProducts, Err: err}
	}
	return nil
}

func (r *catalogRepository) UpsertCollection(ctx context.Context, collection *domain.Collection) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"handle", "title", "updated_at",
			}),
		}).
		Create(collection).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityCollections, Err: err}
	}
	return nil
}

// LinkCollectionProduct inserts the membership row; an existing pair is left
// untouched.
func (r *catalogRepository) LinkCollectionProduct(ctx context.Context, collectionID, productID int64) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.CollectionProduct{CollectionID: collectionID, ProductID: productID}).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityCollections, Err: err}
	}
	return nil
}

func (r *catalogRepository) ProductIDByRemoteID(ctx context.Context, remoteID int64) (int64, error) {
	id, err := idByRemoteID(ctx, r.db, &domain.Product{}, remoteID)
	if err != nil {
		return 0, &domain.PersistenceError{Entity: domain.EntityProducts, Err: err}
	}
	return id, nil
}

func (r *catalogRepository) VariantIDByRemoteID(ctx context.Context, remoteID int64) (int64, error) {
	id, err := idByRemoteID(ctx, r.db, &domain.ProductVariant{}, remoteID)
	if err != nil {
		return 0, &domain.PersistenceError{Entity: domain.EntityProducts, Err: err}
	}
	return id, nil
}
