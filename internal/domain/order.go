package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address kinds for an order's shipping and billing addresses. An order has
// at most one of each, keyed by (order id, kind).
const (
	AddressKindShipping = "shipping"
	AddressKindBilling  = "billing"
)

// Order is a synced order. CustomerID is optional: the referenced customer
// may not be synced (or the scope to read customers may be absent), in which
// case the reference degrades to null rather than failing the record.
type Order struct {
	ID                int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID          int64               `gorm:"uniqueIndex;not null" json:"remote_id"`
	ShopID            int64               `gorm:"index;not null" json:"shop_id"`
	CustomerID        *int64              `gorm:"index" json:"customer_id"`
	OrderNumber       string              `gorm:"size:64;uniqueIndex;not null" json:"order_number"`
	FinancialStatus   string              `gorm:"size:32" json:"financial_status"`
	FulfillmentStatus string              `gorm:"size:32" json:"fulfillment_status"`
	TotalPrice        decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"total_price"`
	Currency          string              `gorm:"size:10" json:"currency"`
	RemoteCreatedAt   *time.Time          `json:"remote_created_at"`
	RemoteUpdatedAt   *time.Time          `json:"remote_updated_at"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`

	Items     []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Addresses []OrderAddress `gorm:"foreignKey:OrderID" json:"addresses,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. RemoteID is the Shopify line item id and
// makes re-syncing an order idempotent; variant and product references
// degrade to null when the target row has not been synced.
type OrderItem struct {
	ID        int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID  int64               `gorm:"uniqueIndex;not null" json:"remote_id"`
	OrderID   int64               `gorm:"index;not null" json:"order_id"`
	VariantID *int64              `gorm:"index" json:"variant_id"`
	ProductID *int64              `gorm:"index" json:"product_id"`
	Quantity  int                 `gorm:"default:0" json:"quantity"`
	UnitPrice decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"unit_price"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderAddress is an order's shipping or billing address.
type OrderAddress struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"uniqueIndex:idx_order_address_kind;not null" json:"order_id"`
	Kind      string    `gorm:"size:16;uniqueIndex:idx_order_address_kind;not null" json:"kind"`
	FirstName string    `gorm:"size:255" json:"first_name"`
	LastName  string    `gorm:"size:255" json:"last_name"`
	Address1  string    `gorm:"size:512" json:"address1"`
	Address2  string    `gorm:"size:512" json:"address2"`
	City      string    `gorm:"size:255" json:"city"`
	Province  string    `gorm:"size:255" json:"province"`
	Country   string    `gorm:"size:255" json:"country"`
	Zip       string    `gorm:"size:32" json:"zip"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OrderAddress) TableName() string {
	return "order_addresses"
}
