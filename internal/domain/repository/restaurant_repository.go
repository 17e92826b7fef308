package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
)

// RestaurantRepository defines the interface for restaurant data operations
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *entity.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Restaurant, error)
	Update(ctx context.Context, restaurant *entity.Restaurant) error

	GetConfig(ctx context.Context, restaurantID uuid.UUID) (*entity.RestaurantConfig, error)
	SaveConfig(ctx context.Context, config *entity.RestaurantConfig) error

	// NextFolio atomically claims and returns the next folio number for
	// the restaurant's series.
	NextFolio(ctx context.Context, restaurantID uuid.UUID) (int64, error)
}

// TableRepository defines the interface for dining table data operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.DiningTable) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error)
	List(ctx context.Context) ([]entity.DiningTable, error)
}

// ProductRepository defines the interface for product catalog reads.
// Line snapshots copy from here; orders never mutate the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Product, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
