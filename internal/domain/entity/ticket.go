package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenixpos/fenix-api/internal/domain/enum"
)

// Ticket is the durable record of one generated printable document.
// Exactly one semantic ticket exists per triggering transition;
// reprints add TicketAudit rows, not new tickets. Content, once
// generated, is immutable truth for reprints; rebuild is an explicit
// operation.
type Ticket struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Kind         enum.TicketKind `gorm:"not null" json:"kind"`

	// Content is the serialized TicketDocument. Empty or unparseable
	// content is treated as absent and triggers a rebuild on read.
	Content   string `gorm:"type:text" json:"-"`
	QRPayload string `gorm:"size:512" json:"qr_payload,omitempty"`

	CopiesPrinted   int    `gorm:"default:0" json:"copies_printed"`
	PrinterName     string `gorm:"size:100" json:"printer_name,omitempty"`
	PrinterEndpoint string `gorm:"size:255" json:"printer_endpoint,omitempty"`

	GeneratedBy *uuid.UUID `gorm:"type:uuid" json:"generated_by,omitempty"`
	GeneratedAt time.Time  `gorm:"not null" json:"generated_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Ticket) TableName() string {
	return "tickets"
}

// TicketAudit is an append-only trail of reprint and cancellation
// events, distinct from the primary ticket row per transition.
type TicketAudit struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	TicketID  *uuid.UUID      `gorm:"type:uuid;index" json:"ticket_id,omitempty"`
	Kind      enum.TicketKind `gorm:"not null" json:"kind"`
	ActorID   *uuid.UUID      `gorm:"type:uuid" json:"actor_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (a *TicketAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (TicketAudit) TableName() string {
	return "ticket_audits"
}
