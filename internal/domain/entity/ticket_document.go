package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fenixpos/fenix-api/internal/domain/enum"
)

// TicketDocument is a printer-agnostic, kind-tagged document model.
// It is not a database entity: it is composed from an order snapshot
// at generation time, serialized into Ticket.Content, and rendered to
// fixed-width text separately. Building it is pure: the same snapshot
// and kind always produce the same document.
type TicketDocument struct {
	Kind     enum.TicketKind         `json:"kind"`
	Header   TicketHeader            `json:"header"`
	Items    []TicketItem            `json:"items,omitempty"`
	Totals   *TicketTotals           `json:"totals,omitempty"`
	Payments []TicketPayment         `json:"payments,omitempty"`
	Order    *CancelledOrderSummary  `json:"order,omitempty"`
	QR       string                  `json:"qr,omitempty"`
	Meta     TicketMeta              `json:"meta"`
}

// TicketHeader is the block printed at the top of every ticket kind.
type TicketHeader struct {
	RestaurantName string          `json:"restaurant_name"`
	AddressLine1   string          `json:"address_line1,omitempty"`
	AddressLine2   string          `json:"address_line2,omitempty"`
	TaxID          string          `json:"tax_id,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	TableName      string          `json:"table_name,omitempty"`
	OrderKind      string          `json:"order_kind,omitempty"`
	Cashier        string          `json:"cashier,omitempty"`
	Folio          string          `json:"folio,omitempty"`
	IssuedAt       string          `json:"issued_at"`
	Currency       string          `json:"currency,omitempty"`
	TaxMode        string          `json:"tax_mode,omitempty"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
}

// TicketItem is one line on the item list. Kitchen tickets carry name
// and quantity only; unit price and amount stay nil there.
type TicketItem struct {
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	Quantity  int64            `json:"qty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
}

// TicketTotals is the totals block of a sale ticket.
type TicketTotals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	Tax                decimal.Decimal `json:"tax"`
	ShowTax            bool            `json:"show_tax"`
	DeliveryFee        decimal.Decimal `json:"delivery_fee"`
	RoundingAdjustment decimal.Decimal `json:"rounding_adjustment"`
	Total              decimal.Decimal `json:"total"`
}

// TicketPayment is one tender row on a sale ticket.
type TicketPayment struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// CancelledOrderSummary is the compact body of a cancellation ticket.
type CancelledOrderSummary struct {
	OrderID     uuid.UUID       `json:"order_id"`
	PriorStatus string          `json:"prior_status"`
	OrderKind   string          `json:"order_kind"`
	TableName   string          `json:"table_name,omitempty"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
}

// TicketMeta links the document back to its rows.
type TicketMeta struct {
	TicketID     uuid.UUID  `json:"ticket_id"`
	OrderID      uuid.UUID  `json:"order_id"`
	RestaurantID uuid.UUID  `json:"restaurant_id"`
	GeneratedBy  *uuid.UUID `json:"generated_by,omitempty"`
	GeneratedAt  string     `json:"generated_at"`
}
