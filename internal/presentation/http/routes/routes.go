package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fenixpos/fenix-api/internal/config"
	domainRepo "github.com/fenixpos/fenix-api/internal/domain/repository"
	"github.com/fenixpos/fenix-api/internal/presentation/http/handler"
	"github.com/fenixpos/fenix-api/internal/presentation/http/middleware"
	"github.com/fenixpos/fenix-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Order   *handler.OrderHandler
	Line    *handler.LineHandler
	Ticket  *handler.TicketHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-restaurant rate limiter
		rateLimiter := middleware.NewRestaurantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerOrderRoutes(protected, h, deps)
		registerTicketRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		// Terminal retries of order creation must not open duplicates.
		orders.POST("", middleware.Idempotency(deps.IdempotencyRepo), h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)

		// Lifecycle transitions
		orders.POST("/:id/send-to-kitchen", h.Order.SendToKitchen)
		orders.POST("/:id/ready", h.Order.MarkReady)
		orders.POST("/:id/pay", middleware.Idempotency(deps.IdempotencyRepo), h.Order.Pay)
		orders.POST("/:id/cancel", h.Order.Cancel)

		// Order adjustments
		orders.PUT("/:id/delivery-fee", h.Order.SetDeliveryFee)
		orders.PUT("/:id/tax-mode", h.Order.SetTaxMode)

		// Lines
		orders.GET("/:id/lines", h.Line.List)
		orders.POST("/:id/lines", h.Line.Add)
		orders.PUT("/:id/lines/:lineId", h.Line.UpdateQuantity)
		orders.DELETE("/:id/lines/:lineId", h.Line.Remove)

		// Tickets of an order
		orders.GET("/:id/tickets", h.Ticket.ListForOrder)
		orders.GET("/:id/ticket-audits", h.Ticket.Audits)
		orders.POST("/:id/tickets/:kind/reprint", h.Ticket.Reprint)
	}
}

func registerTicketRoutes(protected *gin.RouterGroup, h *Handlers) {
	tickets := protected.Group("/tickets")
	{
		tickets.GET("/:id", h.Ticket.Get)
		tickets.POST("/:id/rebuild", h.Ticket.Rebuild)
		tickets.POST("/:id/print", h.Ticket.Print)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.Test)
	}
}
