package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	domainRepo "github.com/fenixpos/fenix-api/internal/domain/repository"
)

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db *gorm.DB) domainRepo.RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	var restaurant entity.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Config").
		First(&restaurant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &restaurant, err
}

func (r *restaurantRepository) GetBySlug(ctx context.Context, slug string) (*entity.Restaurant, error) {
	var restaurant entity.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Config").
		First(&restaurant, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &restaurant, err
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

func (r *restaurantRepository) GetConfig(ctx context.Context, restaurantID uuid.UUID) (*entity.RestaurantConfig, error) {
	var config entity.RestaurantConfig
	err := r.db.WithContext(ctx).
		First(&config, "restaurant_id = ?", restaurantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &config, err
}

func (r *restaurantRepository) SaveConfig(ctx context.Context, config *entity.RestaurantConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}

// NextFolio claims the next folio number with a single atomic UPDATE,
// so two concurrent pay transitions can never share a folio.
func (r *restaurantRepository) NextFolio(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	var claimed int64
	err := r.db.WithContext(ctx).Raw(
		"UPDATE restaurant_configs SET next_folio = next_folio + 1, updated_at = NOW() WHERE restaurant_id = ? RETURNING next_folio - 1",
		restaurantID,
	).Scan(&claimed).Error
	if err != nil {
		return 0, err
	}
	if claimed == 0 {
		return 0, fmt.Errorf("no config row for restaurant %s", restaurantID)
	}
	return claimed, nil
}

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new dining table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.DiningTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	var table entity.DiningTable
	err := r.db.WithContext(ctx).
		Scopes(RestaurantScope(ctx)).
		First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) List(ctx context.Context) ([]entity.DiningTable, error) {
	var tables []entity.DiningTable
	err := r.db.WithContext(ctx).
		Scopes(RestaurantScope(ctx)).
		Order("name ASC").
		Find(&tables).Error
	return tables, err
}
