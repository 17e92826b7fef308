package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiningTable is a physical table in the restaurant. Named to avoid
// colliding with SQL's TABLE keyword in generated DDL.
type DiningTable struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t *DiningTable) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (DiningTable) TableName() string {
	return "dining_tables"
}
