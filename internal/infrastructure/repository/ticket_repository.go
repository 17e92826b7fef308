package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	domainRepo "github.com/fenixpos/fenix-api/internal/domain/repository"
)

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).
		Scopes(RestaurantScope(ctx)).
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetByOrderAndKind(ctx context.Context, orderID uuid.UUID, kind enum.TicketKind) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).
		Scopes(RestaurantScope(ctx)).
		Where("order_id = ? AND kind = ?", orderID, kind).
		Order("created_at DESC").
		First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.WithContext(ctx).
		Scopes(RestaurantScope(ctx)).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) UpdateContent(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Model(&entity.Ticket{}).
		Scopes(RestaurantScope(ctx)).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"content":      ticket.Content,
			"qr_payload":   ticket.QRPayload,
			"generated_at": ticket.GeneratedAt,
			"generated_by": ticket.GeneratedBy,
		}).Error
}

func (r *ticketRepository) IncrementCopies(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Ticket{}).
		Scopes(RestaurantScope(ctx)).
		Where("id = ?", id).
		UpdateColumn("copies_printed", gorm.Expr("copies_printed + 1")).Error
}

type ticketAuditRepository struct {
	db *gorm.DB
}

// NewTicketAuditRepository creates a new ticket audit repository
func NewTicketAuditRepository(db *gorm.DB) domainRepo.TicketAuditRepository {
	return &ticketAuditRepository{db: db}
}

func (r *ticketAuditRepository) Create(ctx context.Context, audit *entity.TicketAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *ticketAuditRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.TicketAudit, error) {
	var audits []entity.TicketAudit
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&audits).Error
	return audits, err
}
