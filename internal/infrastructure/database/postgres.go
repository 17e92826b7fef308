package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fenixpos/fenix-api/internal/config"
	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/pkg/utils"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenant entities
		&entity.Restaurant{},
		&entity.RestaurantConfig{},
		&entity.DiningTable{},
		&entity.User{},

		// Catalog
		&entity.Product{},

		// Order lifecycle
		&entity.Order{},
		&entity.OrderLine{},
		&entity.Payment{},

		// Ticketing
		&entity.Ticket{},
		&entity.TicketAudit{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds a demo restaurant with its config, a few dining
// tables, a small menu and a cashier account. Safe to run repeatedly.
func SeedDefaultData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding default data...")

	var restaurant entity.Restaurant
	err := db.Where("slug = ?", "fenix-demo").First(&restaurant).Error
	if err == nil {
		log.Println("Seed data already present, skipping")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	restaurant = entity.Restaurant{
		Name:       "Fenix Demo",
		Slug:       utils.Slugify("Fenix Demo"),
		Street:     "Av. Juarez",
		ExtNumber:  "120",
		City:       "Guadalajara",
		State:      "Jalisco",
		PostalCode: "44100",
		Phone:      "33-0000-0000",
	}
	if err := db.Create(&restaurant).Error; err != nil {
		return fmt.Errorf("failed to seed restaurant: %w", err)
	}

	taxMode := enum.TaxModeIncluded
	if parsed, ok := enum.ParseTaxMode(cfg.Tax.Mode); ok {
		taxMode = parsed
	}
	restConfig := entity.RestaurantConfig{
		RestaurantID:   restaurant.ID,
		TaxMode:        taxMode,
		TaxRate:        decimal.NewFromFloat(cfg.Tax.Rate),
		Currency:       "MXN",
		FolioSeries:    "A",
		NextFolio:      1,
		KitchenPrinter: "KITCHEN_80MM",
		SalePrinter:    "FRONT_58MM",
		PrintEndpoint:  cfg.Printer.Endpoint,
		PaperWidth:     cfg.Printer.PaperWidth,
	}
	if err := db.Create(&restConfig).Error; err != nil {
		return fmt.Errorf("failed to seed restaurant config: %w", err)
	}

	for i := 1; i <= 6; i++ {
		table := entity.DiningTable{
			RestaurantID: restaurant.ID,
			Name:         fmt.Sprintf("Mesa %d", i),
			Active:       true,
		}
		if err := db.Create(&table).Error; err != nil {
			return fmt.Errorf("failed to seed table: %w", err)
		}
	}

	products := []entity.Product{
		{RestaurantID: restaurant.ID, Name: "Tacos al pastor (orden)", SKU: "TACO-PASTOR", Price: decimal.NewFromFloat(95.00), Active: true},
		{RestaurantID: restaurant.ID, Name: "Hamburguesa doble", SKU: "HAMB-DOBLE", Price: decimal.NewFromFloat(145.00), Active: true},
		{RestaurantID: restaurant.ID, Name: "Refresco 600ml", SKU: "REF-600", Price: decimal.NewFromFloat(28.00), Active: true},
		{RestaurantID: restaurant.ID, Name: "Agua fresca", SKU: "AGUA-FRESCA", Price: decimal.NewFromFloat(25.00), Active: true},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("cashier123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	cashier := entity.User{
		RestaurantID: restaurant.ID,
		Name:         "Demo Cashier",
		Email:        "cashier@fenix.local",
		Password:     string(hashed),
		Role:         "cashier",
	}
	if err := db.Create(&cashier).Error; err != nil {
		return fmt.Errorf("failed to seed cashier: %w", err)
	}

	log.Println("Seed data created (cashier@fenix.local / cashier123)")
	return nil
}
