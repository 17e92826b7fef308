package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog entry order lines snapshot from. The catalog
// CRUD lives in the back-office; the order core only reads it.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name         string          `gorm:"size:150;not null" json:"name"`
	SKU          string          `gorm:"size:50" json:"sku,omitempty"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Active       bool            `gorm:"default:true" json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}
