package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fenixpos/fenix-api/internal/domain/billing"
	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/internal/domain/repository"
	"github.com/fenixpos/fenix-api/pkg/apperror"
)

// OrderService drives the order lifecycle. State transitions are
// serialized per order and enforced twice: against the in-memory state
// machine for the error message, and by a status-predicated UPDATE for
// correctness under concurrency. Ticket generation and printing are
// side effects of transitions; their failure never rolls a transition
// back.
type OrderService struct {
	orderRepo      repository.OrderRepository
	lineRepo       repository.OrderLineRepository
	paymentRepo    repository.PaymentRepository
	restaurantRepo repository.RestaurantRepository
	tableRepo      repository.TableRepository
	ticketService  *TicketService
	locks          *orderLocks
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	paymentRepo repository.PaymentRepository,
	restaurantRepo repository.RestaurantRepository,
	tableRepo repository.TableRepository,
	ticketService *TicketService,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		lineRepo:       lineRepo,
		paymentRepo:    paymentRepo,
		restaurantRepo: restaurantRepo,
		tableRepo:      tableRepo,
		ticketService:  ticketService,
		locks:          newOrderLocks(),
	}
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	RestaurantID uuid.UUID
	UserID       *uuid.UUID
	TableID      *uuid.UUID
	Kind         enum.OrderKind
}

// CreateOrder opens a new pending order, snapshotting the restaurant's
// tax configuration onto it.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	config, err := s.restaurantRepo.GetConfig(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, apperror.NewNotFoundError("Restaurant config")
	}

	if input.TableID != nil {
		if input.Kind != enum.OrderKindDineIn {
			return nil, apperror.NewInvalidOrderKindError("Only dine-in orders can have a table")
		}
		table, err := s.tableRepo.GetByID(ctx, *input.TableID)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, apperror.NewNotFoundError("Table")
		}
	}

	order := &entity.Order{
		RestaurantID: input.RestaurantID,
		TableID:      input.TableID,
		UserID:       input.UserID,
		Kind:         input.Kind,
		Status:       enum.OrderStatusPending,
		TaxMode:      config.TaxMode,
		TaxRate:      config.TaxRate,
		SubTotal:     decimal.Zero,
		Tax:          decimal.Zero,
		Total:        decimal.Zero,
		DeliveryFee:  decimal.Zero,
		OpenedAt:     time.Now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns an order with lines, payments, table and cashier.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with optional filters.
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// SendToKitchen moves a pending order to in_progress and emits the
// kitchen ticket, attributed to the acting cashier.
func (s *OrderService) SendToKitchen(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*entity.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(enum.OrderStatusInProgress) {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), "send to kitchen")
	}
	if len(order.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Order has no lines to send")
	}

	order.Status = enum.OrderStatusInProgress
	ok, err := s.orderRepo.UpdateStatusIf(ctx, id, []enum.OrderStatus{enum.OrderStatusPending}, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidTransition
	}

	s.emitTicket(ctx, order, enum.TicketKindKitchen, actorID, true)
	return order, nil
}

// MarkReady moves an in_progress order to ready.
func (s *OrderService) MarkReady(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(enum.OrderStatusReady) {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), "mark ready")
	}

	order.Status = enum.OrderStatusReady
	ok, err := s.orderRepo.UpdateStatusIf(ctx, id, []enum.OrderStatus{enum.OrderStatusInProgress}, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidTransition
	}
	return order, nil
}

// PaymentInput is one tender in a pay request.
type PaymentInput struct {
	Method string
	Amount decimal.Decimal
	Note   string
}

// PayInput carries everything the pay transition needs: the tenders,
// the acting cashier, and the optional cash-rounding adjustment.
type PayInput struct {
	ActorID            *uuid.UUID
	Payments           []PaymentInput
	RoundingAdjustment *decimal.Decimal
}

// Pay settles an order: applies the rounding adjustment, recomputes
// and persists totals, claims a folio, records payments, moves the
// order to paid and emits the sale ticket. A lost race with another
// pay attempt surfaces as an invalid transition.
func (s *OrderService) Pay(ctx context.Context, id uuid.UUID, input *PayInput) (*entity.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(enum.OrderStatusPaid) {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), "pay")
	}
	if len(order.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Cannot pay an empty order")
	}
	if len(input.Payments) == 0 {
		return nil, apperror.NewBadRequestError("At least one payment is required")
	}

	if input.RoundingAdjustment != nil {
		order.RoundingAdjustment = input.RoundingAdjustment.Round(2)
	}
	// The figures the sale ticket freezes are the ones settled here.
	if err := s.recomputeTotals(ctx, order); err != nil {
		return nil, err
	}

	folio, err := s.restaurantRepo.NextFolio(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = enum.OrderStatusPaid
	order.PaidAt = &now
	order.Folio = folio

	ok, err := s.orderRepo.UpdateStatusIf(ctx, id,
		[]enum.OrderStatus{enum.OrderStatusInProgress, enum.OrderStatusReady}, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidTransition
	}

	rows := make([]entity.Payment, 0, len(input.Payments))
	for _, p := range input.Payments {
		rows = append(rows, entity.Payment{
			OrderID: id,
			Method:  p.Method,
			Amount:  p.Amount.Round(2),
			Note:    p.Note,
		})
	}
	if err := s.paymentRepo.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}
	order.Payments = rows

	s.emitTicket(ctx, order, enum.TicketKindSale, input.ActorID, true)
	return order, nil
}

// Cancel aborts an order from any non-terminal state and generates a
// cancellation ticket attributed to the acting cashier. Cancellation
// tickets are recorded, never sent to a printer.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*entity.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(enum.OrderStatusCancelled) {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), "cancel")
	}

	now := time.Now()
	prior := order.Status
	order.Status = enum.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancelledFrom = &prior

	ok, err := s.orderRepo.UpdateStatusIf(ctx, id, []enum.OrderStatus{
		enum.OrderStatusPending, enum.OrderStatusInProgress, enum.OrderStatusReady,
	}, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidTransition
	}

	s.emitTicket(ctx, order, enum.TicketKindCancellation, actorID, false)
	return order, nil
}

// SetDeliveryFee sets the delivery fee on a delivery order and
// recomputes its totals.
func (s *OrderService) SetDeliveryFee(ctx context.Context, id uuid.UUID, fee decimal.Decimal) (*entity.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Kind != enum.OrderKindDelivery {
		return nil, apperror.NewInvalidOrderKindError("Delivery fee applies to delivery orders only")
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), "set delivery fee on")
	}
	if fee.IsNegative() {
		return nil, apperror.NewBadRequestError("Delivery fee cannot be negative")
	}

	order.DeliveryFee = fee.Round(2)
	if err := s.recomputeTotals(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetTaxMode re-snapshots the tax mode and rate onto an open order and
// recomputes its totals.
func (s *OrderService) SetTaxMode(ctx context.Context, id uuid.UUID, mode enum.TaxMode, rate *decimal.Decimal) (*entity.Order, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), "change tax mode on")
	}

	order.TaxMode = mode
	if rate != nil {
		if rate.IsNegative() {
			return nil, apperror.NewBadRequestError("Tax rate cannot be negative")
		}
		order.TaxRate = rate.Round(2)
	} else {
		config, err := s.restaurantRepo.GetConfig(ctx, order.RestaurantID)
		if err != nil {
			return nil, err
		}
		if config != nil {
			order.TaxRate = config.TaxRate
		}
	}

	if err := s.recomputeTotals(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// recomputeTotals rederives the money figures from the current line
// list and persists them.
func (s *OrderService) recomputeTotals(ctx context.Context, order *entity.Order) error {
	lines := make([]billing.Line, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, billing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	totals := billing.ComputeTotals(lines, order.TaxMode, order.TaxRate, order.DeliveryFee, order.RoundingAdjustment)
	order.SubTotal = totals.Subtotal
	order.Tax = totals.Tax
	order.Total = totals.Total
	return s.orderRepo.UpdateTotals(ctx, order)
}

// emitTicket generates and stores the ticket for a transition, then
// optionally dispatches it. Failures are logged and swallowed: the
// transition already happened and stays.
func (s *OrderService) emitTicket(ctx context.Context, order *entity.Order, kind enum.TicketKind, actorID *uuid.UUID, dispatch bool) {
	ticket, err := s.ticketService.CreateForTransition(ctx, order, kind, actorID)
	if err != nil {
		log.Printf("order %s: %s ticket generation failed: %v", order.ID, kind, err)
		return
	}
	if !dispatch {
		return
	}
	if err := s.ticketService.Dispatch(ctx, ticket, actorID); err != nil {
		log.Printf("order %s: %s ticket delivery failed: %v", order.ID, kind, err)
	}
}
