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

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Scopes(RestaurantScope(ctx)).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Scopes(RestaurantScope(ctx)).
		Preload("Table").
		Preload("User").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(RestaurantScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}

	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}

	if params.OpenOnly {
		query = query.Where("status NOT IN ?", []enum.OrderStatus{enum.OrderStatusPaid, enum.OrderStatusCancelled})
	}

	if params.StartDate != nil {
		query = query.Where("opened_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("opened_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "opened_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Table").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected []enum.OrderStatus, order *entity.Order) (bool, error) {
	updates := map[string]interface{}{
		"status":         order.Status,
		"paid_at":        order.PaidAt,
		"cancelled_at":   order.CancelledAt,
		"cancelled_from": order.CancelledFrom,
		"folio":          order.Folio,
	}
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Scopes(RestaurantScope(ctx)).
		Where("id = ? AND status IN ?", id, expected).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *orderRepository) UpdateTotals(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Scopes(RestaurantScope(ctx)).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"sub_total":           order.SubTotal,
			"tax":                 order.Tax,
			"total":               order.Total,
			"delivery_fee":        order.DeliveryFee,
			"rounding_adjustment": order.RoundingAdjustment,
			"tax_mode":            order.TaxMode,
			"tax_rate":            order.TaxRate,
		}).Error
}
