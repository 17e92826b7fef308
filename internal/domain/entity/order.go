package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fenixpos/fenix-api/internal/domain/enum"
)

// Order represents one customer transaction through its lifecycle.
// Orders are never physically deleted; terminal states are retained
// for audit and reprints.
type Order struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID        `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	TableID      *uuid.UUID       `gorm:"type:uuid;index" json:"table_id,omitempty"`
	UserID       *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Kind         enum.OrderKind   `gorm:"default:0" json:"kind"`
	Status       enum.OrderStatus `gorm:"default:0;index" json:"status"`

	// Monetary figures, each independently rounded to 2 places.
	SubTotal           decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"subtotal"`
	Tax                decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"tax"`
	Total              decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"total"`
	DeliveryFee        decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"delivery_fee"`
	RoundingAdjustment decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"rounding_adjustment"`

	// Tax snapshot taken at order-open time. Once set it wins over the
	// restaurant config; SetTaxMode re-snapshots it.
	TaxMode enum.TaxMode    `gorm:"default:0" json:"tax_mode"`
	TaxRate decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"tax_rate"`

	Folio    int64     `gorm:"default:0" json:"folio,omitempty"`
	OpenedAt time.Time `gorm:"not null" json:"opened_at"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`

	// CancelledFrom records the state the order held when it was
	// cancelled, for the cancellation ticket.
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
	CancelledFrom *enum.OrderStatus `json:"cancelled_from,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Restaurant Restaurant   `gorm:"foreignKey:RestaurantID" json:"-"`
	Table      *DiningTable `gorm:"foreignKey:TableID" json:"table,omitempty"`
	User       *User        `gorm:"foreignKey:UserID" json:"-"`
	Lines      []OrderLine  `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
	Payments   []Payment    `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// OrderLine is one product entry on an order. Product name, SKU and
// unit price are denormalized at add time so later catalog edits never
// alter historical tickets.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:150;not null" json:"product_name"`
	ProductSKU  string          `gorm:"size:50" json:"product_sku,omitempty"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Position    int             `gorm:"default:0" json:"position"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (OrderLine) TableName() string {
	return "order_lines"
}
