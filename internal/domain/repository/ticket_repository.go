package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
)

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	// GetByOrderAndKind returns the single semantic ticket of a kind for
	// an order, or nil when none exists yet.
	GetByOrderAndKind(ctx context.Context, orderID uuid.UUID, kind enum.TicketKind) (*entity.Ticket, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Ticket, error)
	// UpdateContent replaces the stored document after a rebuild.
	UpdateContent(ctx context.Context, ticket *entity.Ticket) error
	// IncrementCopies bumps the delivered copy counter by one.
	IncrementCopies(ctx context.Context, id uuid.UUID) error
}

// TicketAuditRepository records print and cancellation events, append-only.
type TicketAuditRepository interface {
	Create(ctx context.Context, audit *entity.TicketAudit) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.TicketAudit, error)
}
