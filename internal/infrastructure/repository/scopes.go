package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// RestaurantIDKey is the context key for the restaurant ID
	RestaurantIDKey ctxKey = "restaurant_id"
)

// RestaurantScope returns a GORM scope that filters rows by restaurant.
// Applied to every query on restaurant-scoped entities.
func RestaurantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		restaurantID, ok := ctx.Value(RestaurantIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: no restaurant in context means no rows, never
			// cross-restaurant reads.
			return db.Where("1 = 0")
		}
		return db.Where("restaurant_id = ?", restaurantID)
	}
}

// WithRestaurant adds the restaurant ID to the context
func WithRestaurant(ctx context.Context, restaurantID uuid.UUID) context.Context {
	return context.WithValue(ctx, RestaurantIDKey, restaurantID)
}

// GetRestaurantID extracts the restaurant ID from the context
func GetRestaurantID(ctx context.Context) (uuid.UUID, bool) {
	restaurantID, ok := ctx.Value(RestaurantIDKey).(uuid.UUID)
	return restaurantID, ok
}
