package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a synced customer. The spend/orders aggregates are nullable
// because some API access scopes omit them entirely.
type Customer struct {
	ID              int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID        int64               `gorm:"uniqueIndex;not null" json:"remote_id"`
	ShopID          int64               `gorm:"index;not null" json:"shop_id"`
	FirstName       string              `gorm:"size:255" json:"first_name"`
	LastName        string              `gorm:"size:255" json:"last_name"`
	Email           string              `gorm:"size:255;index" json:"email"`
	Phone           string              `gorm:"size:64" json:"phone"`
	TotalSpent      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"total_spent"`
	OrdersCount     *int64              `json:"orders_count"`
	RemoteCreatedAt *time.Time          `json:"remote_created_at"`
	RemoteUpdatedAt *time.Time          `json:"remote_updated_at"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`

	Addresses []CustomerAddress `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerAddress is a customer's postal address.
type CustomerAddress struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID   int64     `gorm:"uniqueIndex;not null" json:"remote_id"`
	CustomerID int64     `gorm:"index;not null" json:"customer_id"`
	Address1   string    `gorm:"size:512" json:"address1"`
	Address2   string    `gorm:"size:512" json:"address2"`
	City       string    `gorm:"size:255" json:"city"`
	Province   string    `gorm:"size:255" json:"province"`
	Country    string    `gorm:"size:255" json:"country"`
	Zip        string    `gorm:"size:32" json:"zip"`
	IsDefault  bool      `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CustomerAddress) TableName() string {
	return "customer_addresses"
}
