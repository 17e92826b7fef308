package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/fenixpos/fenix-api/internal/application/service"
	"github.com/fenixpos/fenix-api/internal/config"
	"github.com/fenixpos/fenix-api/internal/infrastructure/database"
	"github.com/fenixpos/fenix-api/internal/infrastructure/repository"
	"github.com/fenixpos/fenix-api/internal/presentation/http/handler"
	"github.com/fenixpos/fenix-api/internal/presentation/http/routes"
	"github.com/fenixpos/fenix-api/pkg/printer"
	"github.com/fenixpos/fenix-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	tableRepo := repository.NewTableRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	lineRepo := repository.NewOrderLineRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	auditRepo := repository.NewTicketAuditRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize print sink
	defaultSink := printer.NewHTTPSink(cfg.Printer.Endpoint, cfg.Printer.Timeout, cfg.Printer.RetryDelay)
	sinkFor := func(endpoint string) printer.Sink {
		return printer.NewHTTPSink(endpoint, cfg.Printer.Timeout, cfg.Printer.RetryDelay)
	}
	if cfg.Printer.Endpoint == "" {
		defaultSink = printer.NewNullSink()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	printerService := service.NewPrinterService(defaultSink, sinkFor, cfg.Printer.PaperWidth)
	ticketService := service.NewTicketService(ticketRepo, auditRepo, orderRepo, restaurantRepo, printerService)
	orderService := service.NewOrderService(orderRepo, lineRepo, paymentRepo, restaurantRepo, tableRepo, ticketService)
	lineService := service.NewLineService(orderRepo, lineRepo, productRepo, orderService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Order:   handler.NewOrderHandler(orderService),
		Line:    handler.NewLineHandler(lineService),
		Ticket:  handler.NewTicketHandler(ticketService, printerService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s (%s)", cfg.App.Name, port, cfg.App.Env)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
