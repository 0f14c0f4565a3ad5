package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository.
func NewOrderRepository(db *gorm.DB) ports.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) UpsertOrder(ctx context.Context, order *domain.Order) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer_id", "financial_status", "fulfillment_status",
				"total_price", "currency",
				"remote_created_at", "remote_updated_at", "updated_at",
			}),
		}).
		Create(order).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityOrders, Err: err}
	}
	return nil
}

// UpsertItem writes a line item keyed by its remote line-item id, which makes
// re-syncing an order idempotent instead of duplicating its lines.
func (r *orderRepository) UpsertItem(ctx context.Context, item *domain.OrderItem) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"variant_id", "product_id", "quantity", "unit_price", "updated_at",
			}),
		}).
		Create(item).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityOrders, Err: err}
	}
	return nil
}

func (r *orderRepository) UpsertAddress(ctx context.Context, address *domain.OrderAddress) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "address1", "address2",
				"city", "province", "country", "zip", "updated_at",
			}),
		}).
		Create(address).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityOrders, Err: err}
	}
	return nil
}
