package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storelens-shopify-sync/internal/domain"
	"storelens-shopify-sync/internal/ports"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates the customer repository.
func NewCustomerRepository(db *gorm.DB) ports.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) UpsertCustomer(ctx context.Context, customer *domain.Customer) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "email", "phone",
				"total_spent", "orders_count",
				"remote_created_at", "remote_updated_at", "updated_at",
			}),
		}).
		Create(customer).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityCustomers, Err: err}
	}
	return nil
}

func (r *customerRepository) UpsertAddress(ctx context.Context, address *domain.CustomerAddress) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "remote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer_id", "address1", "address2", "city", "province",
				"country", "zip", "is_default", "updated_at",
			}),
		}).
		Create(address).Error
	if err != nil {
		return &domain.PersistenceError{Entity: domain.EntityCustomers, Err: err}
	}
	return nil
}

func (r *customerRepository) CustomerIDByRemoteID(ctx context.Context, remoteID int64) (int64, error) {
	id, err := idByRemoteID(ctx, r.db, &domain.Customer{}, remoteID)
	if err != nil {
		return 0, &domain.PersistenceError{Entity: domain.EntityCustomers, Err: err}
	}
	return id, nil
}
