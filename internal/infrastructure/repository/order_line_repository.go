package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	domainRepo "github.com/fenixpos/fenix-api/internal/domain/repository"
)

type orderLineRepository struct {
	db *gorm.DB
}

// NewOrderLineRepository creates a new order line repository
func NewOrderLineRepository(db *gorm.DB) domainRepo.OrderLineRepository {
	return &orderLineRepository{db: db}
}

func (r *orderLineRepository) Create(ctx context.Context, line *entity.OrderLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *orderLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error) {
	var line entity.OrderLine
	err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *orderLineRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error) {
	var lines []entity.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("position ASC, created_at ASC").
		Find(&lines).Error
	return lines, err
}

func (r *orderLineRepository) Update(ctx context.Context, line *entity.OrderLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *orderLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderLine{}, "id = ?", id).Error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateBatch(ctx context.Context, payments []entity.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&payments).Error
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}
