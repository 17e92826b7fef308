package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/domain/billing"
	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/internal/domain/repository"
	"github.com/fenixpos/fenix-api/pkg/apperror"
)

// LineService mutates order lines. Every mutation recomputes and
// stores the order totals from the resulting line list.
type LineService struct {
	orderRepo   repository.OrderRepository
	lineRepo    repository.OrderLineRepository
	productRepo repository.ProductRepository
	locks       *orderLocks
}

// NewLineService creates a new line service sharing the order locks of
// the order service.
func NewLineService(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	productRepo repository.ProductRepository,
	orderService *OrderService,
) *LineService {
	return &LineService{
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		productRepo: productRepo,
		locks:       orderService.locks,
	}
}

// AddLineInput represents the add line input
type AddLineInput struct {
	ProductID uuid.UUID
	Quantity  int64
}

// AddLine appends a product to an open order, snapshotting its name,
// SKU and price so later catalog edits never alter this order.
func (s *LineService) AddLine(ctx context.Context, orderID uuid.UUID, input *AddLineInput) (*entity.Order, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewBadRequestError("Quantity must be at least 1")
	}

	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, err := s.getMutableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != enum.OrderStatusPending && order.Status != enum.OrderStatusInProgress {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), "add a line to")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.Active {
		return nil, apperror.NewBadRequestError("Product is not available")
	}

	line := &entity.OrderLine{
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductSKU:  product.SKU,
		UnitPrice:   product.Price,
		Quantity:    input.Quantity,
		Amount:      billing.LineAmount(product.Price, input.Quantity),
		Position:    len(order.Lines),
	}
	if err := s.lineRepo.Create(ctx, line); err != nil {
		return nil, err
	}

	return s.refresh(ctx, order)
}

// UpdateQuantity changes a line's quantity and rederives its amount.
func (s *LineService) UpdateQuantity(ctx context.Context, orderID, lineID uuid.UUID, quantity int64) (*entity.Order, error) {
	if quantity < 1 {
		return nil, apperror.NewBadRequestError("Quantity must be at least 1")
	}

	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, err := s.getMutableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	line, err := s.getOrderLine(ctx, order, lineID)
	if err != nil {
		return nil, err
	}

	line.Quantity = quantity
	line.Amount = billing.LineAmount(line.UnitPrice, quantity)
	if err := s.lineRepo.Update(ctx, line); err != nil {
		return nil, err
	}

	return s.refresh(ctx, order)
}

// RemoveLine deletes a line from an open order.
func (s *LineService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*entity.Order, error) {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, err := s.getMutableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	line, err := s.getOrderLine(ctx, order, lineID)
	if err != nil {
		return nil, err
	}

	if err := s.lineRepo.Delete(ctx, line.ID); err != nil {
		return nil, err
	}

	return s.refresh(ctx, order)
}

// ListLines returns the lines of an order in display order.
func (s *LineService) ListLines(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.lineRepo.GetByOrderID(ctx, orderID)
}

func (s *LineService) getMutableOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewInvalidTransitionError(order.Status.String(), "modify lines of")
	}
	return order, nil
}

func (s *LineService) getOrderLine(ctx context.Context, order *entity.Order, lineID uuid.UUID) (*entity.OrderLine, error) {
	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil || line.OrderID != order.ID {
		return nil, apperror.NewNotFoundError("Order line")
	}
	return line, nil
}

// refresh reloads the line list, recomputes the money figures and
// persists them on the order.
func (s *LineService) refresh(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	lines, err := s.lineRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	billingLines := make([]billing.Line, 0, len(lines))
	for _, l := range lines {
		billingLines = append(billingLines, billing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	totals := billing.ComputeTotals(billingLines, order.TaxMode, order.TaxRate, order.DeliveryFee, order.RoundingAdjustment)
	order.SubTotal = totals.Subtotal
	order.Tax = totals.Tax
	order.Total = totals.Total

	if err := s.orderRepo.UpdateTotals(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
