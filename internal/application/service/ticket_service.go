package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/internal/domain/repository"
	"github.com/fenixpos/fenix-api/pkg/apperror"
	"github.com/fenixpos/fenix-api/pkg/printer"
)

// TicketService owns ticket persistence and the print pipeline. One
// semantic ticket exists per (order, kind); reprints deliver more
// copies of it and land in the audit trail instead of creating rows.
type TicketService struct {
	ticketRepo     repository.TicketRepository
	auditRepo      repository.TicketAuditRepository
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	printerService *PrinterService
}

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo repository.TicketRepository,
	auditRepo repository.TicketAuditRepository,
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	printerService *PrinterService,
) *TicketService {
	return &TicketService{
		ticketRepo:     ticketRepo,
		auditRepo:      auditRepo,
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		printerService: printerService,
	}
}

// CreateForTransition generates and stores the ticket a state
// transition produces, attributed to the cashier who triggered it.
// If the ticket already exists (a retried transition), the existing
// row is returned untouched.
func (s *TicketService) CreateForTransition(ctx context.Context, order *entity.Order, kind enum.TicketKind, actorID *uuid.UUID) (*entity.Ticket, error) {
	existing, err := s.ticketRepo.GetByOrderAndKind(ctx, order.ID, kind)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	restaurant, config, err := s.loadRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}

	generatedBy := actorID
	if generatedBy == nil {
		generatedBy = order.UserID
	}

	ticket := &entity.Ticket{
		ID:              uuid.New(),
		OrderID:         order.ID,
		RestaurantID:    order.RestaurantID,
		Kind:            kind,
		PrinterName:     config.PrinterFor(kind),
		PrinterEndpoint: config.PrintEndpoint,
		GeneratedBy:     generatedBy,
		GeneratedAt:     time.Now(),
	}

	doc, err := BuildTicketDocument(&BuildTicketInput{
		Order:       order,
		Restaurant:  restaurant,
		Config:      config,
		Kind:        kind,
		TicketID:    ticket.ID,
		GeneratedBy: ticket.GeneratedBy,
		GeneratedAt: ticket.GeneratedAt,
	})
	if err != nil {
		return nil, err
	}

	content, err := MarshalTicketDocument(doc)
	if err != nil {
		return nil, err
	}
	ticket.Content = content
	ticket.QRPayload = doc.QR

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if kind == enum.TicketKindCancellation {
		s.audit(ctx, ticket, actorID)
	}
	return ticket, nil
}

// GetTicket loads a ticket and its document, rebuilding and re-storing
// the document when the persisted content is missing or corrupt.
func (s *TicketService) GetTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, *entity.TicketDocument, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if ticket == nil {
		return nil, nil, apperror.NewNotFoundError("Ticket")
	}

	doc, err := UnmarshalTicketDocument(ticket.Content)
	if err == nil {
		return ticket, doc, nil
	}
	log.Printf("ticket %s: stored content unusable, rebuilding: %v", ticket.ID, err)

	doc, err = s.rebuild(ctx, ticket)
	if err != nil {
		return nil, nil, err
	}
	return ticket, doc, nil
}

// Rebuild regenerates a ticket's document from the current order
// snapshot and replaces the stored content.
func (s *TicketService) Rebuild(ctx context.Context, id uuid.UUID) (*entity.Ticket, *entity.TicketDocument, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if ticket == nil {
		return nil, nil, apperror.NewNotFoundError("Ticket")
	}
	doc, err := s.rebuild(ctx, ticket)
	if err != nil {
		return nil, nil, err
	}
	return ticket, doc, nil
}

// Print renders a ticket and delivers one copy to its printer. On
// confirmed delivery the copy counter is bumped and an audit row is
// written against the acting cashier.
func (s *TicketService) Print(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	if err := s.Dispatch(ctx, ticket, actorID); err != nil {
		return nil, err
	}
	return s.ticketRepo.GetByID(ctx, id)
}

// Dispatch delivers a ticket to the print sink. Cancellation tickets
// are archive-only and are refused here.
func (s *TicketService) Dispatch(ctx context.Context, ticket *entity.Ticket, actorID *uuid.UUID) error {
	if ticket.Kind == enum.TicketKindCancellation {
		return apperror.NewBadRequestError("Cancellation tickets are not printed")
	}

	doc, err := UnmarshalTicketDocument(ticket.Content)
	if err != nil {
		doc, err = s.rebuild(ctx, ticket)
		if err != nil {
			return err
		}
	}

	_, config, err := s.loadRestaurant(ctx, ticket.RestaurantID)
	if err != nil {
		return err
	}

	content := s.printerService.RenderTicketText(doc, config.PaperWidth)
	job := &printer.Job{
		Printer:  ticket.PrinterName,
		Paper:    paperToken(config.PaperWidth),
		Kind:     ticket.Kind.String(),
		TicketID: ticket.ID.String(),
		OrderID:  ticket.OrderID.String(),
		Content:  content,
	}

	if err := s.printerService.Deliver(ctx, ticket.PrinterEndpoint, job); err != nil {
		return err
	}

	if err := s.ticketRepo.IncrementCopies(ctx, ticket.ID); err != nil {
		log.Printf("ticket %s: delivered but copy count not recorded: %v", ticket.ID, err)
	}
	s.audit(ctx, ticket, actorID)
	return nil
}

// ReprintLastOfKind re-delivers the existing ticket of a kind for an
// order on behalf of the acting cashier.
func (s *TicketService) ReprintLastOfKind(ctx context.Context, orderID uuid.UUID, kind enum.TicketKind, actorID *uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByOrderAndKind(ctx, orderID, kind)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return s.Print(ctx, ticket.ID, actorID)
}

// ListOrderTickets returns every ticket generated for an order.
func (s *TicketService) ListOrderTickets(ctx context.Context, orderID uuid.UUID) ([]entity.Ticket, error) {
	return s.ticketRepo.GetByOrderID(ctx, orderID)
}

// ListOrderAudits returns the print/cancellation trail of an order.
func (s *TicketService) ListOrderAudits(ctx context.Context, orderID uuid.UUID) ([]entity.TicketAudit, error) {
	return s.auditRepo.GetByOrderID(ctx, orderID)
}

// rebuild reassembles the document from persisted rows using the
// ticket's original generation metadata, so an uncorrupted rebuild
// reproduces the stored bytes exactly.
func (s *TicketService) rebuild(ctx context.Context, ticket *entity.Ticket) (*entity.TicketDocument, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, ticket.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	restaurant, config, err := s.loadRestaurant(ctx, ticket.RestaurantID)
	if err != nil {
		return nil, err
	}

	doc, err := BuildTicketDocument(&BuildTicketInput{
		Order:       order,
		Restaurant:  restaurant,
		Config:      config,
		Kind:        ticket.Kind,
		TicketID:    ticket.ID,
		GeneratedBy: ticket.GeneratedBy,
		GeneratedAt: ticket.GeneratedAt,
	})
	if err != nil {
		return nil, err
	}

	content, err := MarshalTicketDocument(doc)
	if err != nil {
		return nil, err
	}
	ticket.Content = content
	ticket.QRPayload = doc.QR
	if err := s.ticketRepo.UpdateContent(ctx, ticket); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *TicketService) loadRestaurant(ctx context.Context, restaurantID uuid.UUID) (*entity.Restaurant, *entity.RestaurantConfig, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, nil, err
	}
	if restaurant == nil {
		return nil, nil, apperror.NewNotFoundError("Restaurant")
	}
	config := restaurant.Config
	if config == nil {
		config, err = s.restaurantRepo.GetConfig(ctx, restaurantID)
		if err != nil {
			return nil, nil, err
		}
		if config == nil {
			return nil, nil, apperror.NewNotFoundError("Restaurant config")
		}
	}
	return restaurant, config, nil
}

// audit appends one trail row. The actor is whoever triggered this
// event, which on reprints can differ from the ticket's generator.
func (s *TicketService) audit(ctx context.Context, ticket *entity.Ticket, actorID *uuid.UUID) {
	if actorID == nil {
		actorID = ticket.GeneratedBy
	}
	audit := &entity.TicketAudit{
		OrderID:  ticket.OrderID,
		TicketID: &ticket.ID,
		Kind:     ticket.Kind,
		ActorID:  actorID,
	}
	if err := s.auditRepo.Create(ctx, audit); err != nil {
		log.Printf("ticket %s: audit row not recorded: %v", ticket.ID, err)
	}
}
