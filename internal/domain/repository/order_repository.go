package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithDetails loads the order with its lines, payments, table and
	// cashier preloaded.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)

	// UpdateStatusIf flips the status only while the row still holds one
	// of the expected statuses, reporting whether a row changed. Callers
	// use the false result to detect a transition lost to a concurrent
	// writer.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected []enum.OrderStatus, order *entity.Order) (bool, error)

	// UpdateTotals persists the recomputed money figures of an order.
	UpdateTotals(ctx context.Context, order *entity.Order) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	Kind       *enum.OrderKind
	TableID    *uuid.UUID
	OpenOnly   bool
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderLineRepository defines the interface for order line data operations
type OrderLineRepository interface {
	Create(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error)
	Update(ctx context.Context, line *entity.OrderLine) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	CreateBatch(ctx context.Context, payments []entity.Payment) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
}
