package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a synced catalog product. RemoteID is the Shopify product id and
// the idempotency key for upserts; variants and images are only ever children
// of their product.
type Product struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID        int64      `gorm:"uniqueIndex;not null" json:"remote_id"`
	ShopID          int64      `gorm:"index;not null" json:"shop_id"`
	Title           string     `gorm:"size:512" json:"title"`
	Handle          string     `gorm:"size:255;index" json:"handle"`
	Vendor          string     `gorm:"size:255" json:"vendor"`
	Status          string     `gorm:"size:32" json:"status"`
	RemoteCreatedAt *time.Time `json:"remote_created_at"`
	RemoteUpdatedAt *time.Time `json:"remote_updated_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductVariant is one purchasable variant of a product. Price is nullable:
// a malformed or missing remote price maps to null, never to zero.
type ProductVariant struct {
	ID                int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID          int64               `gorm:"uniqueIndex;not null" json:"remote_id"`
	ProductID         int64               `gorm:"index;not null" json:"product_id"`
	Title             string              `gorm:"size:255" json:"title"`
	Price             decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price"`
	SKU               string              `gorm:"size:100;index" json:"sku"`
	InventoryQuantity int                 `gorm:"default:0" json:"inventory_quantity"`
	RemoteCreatedAt   *time.Time          `json:"remote_created_at"`
	RemoteUpdatedAt   *time.Time          `json:"remote_updated_at"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductImage is a product media record.
type ProductImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID  int64     `gorm:"uniqueIndex;not null" json:"remote_id"`
	ProductID int64     `gorm:"index;not null" json:"product_id"`
	AltText   string    `gorm:"size:512" json:"alt_text"`
	Width     *int      `json:"width"`
	Height    *int      `json:"height"`
	SrcURL    string    `gorm:"size:1024" json:"src_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

// Collection is a synced product collection.
type Collection struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RemoteID  int64     `gorm:"uniqueIndex;not null" json:"remote_id"`
	ShopID    int64     `gorm:"index;not null" json:"shop_id"`
	Handle    string    `gorm:"size:255;index" json:"handle"`
	Title     string    `gorm:"size:512" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}

// CollectionProduct joins collections to products, keyed by the pair.
type CollectionProduct struct {
	CollectionID int64     `gorm:"primaryKey;autoIncrement:false" json:"collection_id"`
	ProductID    int64     `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (CollectionProduct) TableName() string {
	return "collection_products"
}
