package request

import "github.com/shopspring/decimal"

// CreateOrderRequest opens a new order.
type CreateOrderRequest struct {
	Kind    string  `json:"kind" binding:"required,oneof=dine-in takeaway delivery"`
	TableID *string `json:"table_id,omitempty"`
}

// AddLineRequest appends a product to an order.
type AddLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// UpdateLineRequest changes a line's quantity.
type UpdateLineRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// PaymentRequest is one tender in a pay request.
type PaymentRequest struct {
	Method string          `json:"method" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note,omitempty"`
}

// PayOrderRequest settles an order. The rounding adjustment is the
// cash-rounding correction applied at settlement time.
type PayOrderRequest struct {
	Payments           []PaymentRequest `json:"payments" binding:"required,min=1,dive"`
	RoundingAdjustment *decimal.Decimal `json:"rounding_adjustment,omitempty"`
}

// DeliveryFeeRequest sets the delivery fee on a delivery order.
type DeliveryFeeRequest struct {
	Fee decimal.Decimal `json:"fee" binding:"required"`
}

// TaxModeRequest re-snapshots the order's tax configuration.
type TaxModeRequest struct {
	Mode string           `json:"mode" binding:"required,oneof=included itemized exempt"`
	Rate *decimal.Decimal `json:"rate,omitempty"`
}

// TestPrintRequest names the target printer for a test ticket.
type TestPrintRequest struct {
	Printer string `json:"printer,omitempty"`
}

// LoginRequest authenticates a terminal operator.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
