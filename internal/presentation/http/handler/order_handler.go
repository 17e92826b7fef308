package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/application/service"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/internal/domain/repository"
	"github.com/fenixpos/fenix-api/internal/presentation/http/dto/request"
	"github.com/fenixpos/fenix-api/internal/presentation/http/dto/response"
	"github.com/fenixpos/fenix-api/pkg/pagination"
)

// OrderHandler handles order lifecycle HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	kind, ok := enum.ParseOrderKind(req.Kind)
	if !ok {
		response.BadRequest(c, "Unknown order kind: "+req.Kind)
		return
	}

	input := &service.CreateOrderInput{
		RestaurantID: GetRestaurantID(c),
		UserID:       GetUserID(c),
		Kind:         kind,
	}
	if req.TableID != nil {
		tableID, err := uuid.Parse(*req.TableID)
		if err != nil {
			response.BadRequest(c, "Invalid table id")
			return
		}
		input.TableID = &tableID
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order created", order)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved", order)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		OpenOnly:  c.Query("open") == "true",
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		var status enum.OrderStatus
		if err := status.UnmarshalJSON([]byte(`"` + statusStr + `"`)); err == nil {
			params.Status = &status
		}
	}

	if kindStr := c.Query("kind"); kindStr != "" {
		if kind, ok := enum.ParseOrderKind(kindStr); ok {
			params.Kind = &kind
		}
	}

	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		if tableID, err := uuid.Parse(tableIDStr); err == nil {
			params.TableID = &tableID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// SendToKitchen handles POST /orders/:id/send-to-kitchen
func (h *OrderHandler) SendToKitchen(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.SendToKitchen(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order sent to kitchen", order)
}

// MarkReady handles POST /orders/:id/ready
func (h *OrderHandler) MarkReady(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.MarkReady(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order marked ready", order)
}

// Pay handles POST /orders/:id/pay
func (h *OrderHandler) Pay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payments := make([]service.PaymentInput, 0, len(req.Payments))
	for _, p := range req.Payments {
		payments = append(payments, service.PaymentInput{
			Method: p.Method,
			Amount: p.Amount,
			Note:   p.Note,
		})
	}

	order, err := h.orderService.Pay(c.Request.Context(), id, &service.PayInput{
		ActorID:            GetUserID(c),
		Payments:           payments,
		RoundingAdjustment: req.RoundingAdjustment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order paid", order)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order cancelled", order)
}

// SetDeliveryFee handles PUT /orders/:id/delivery-fee
func (h *OrderHandler) SetDeliveryFee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.DeliveryFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.SetDeliveryFee(c.Request.Context(), id, req.Fee)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery fee updated", order)
}

// SetTaxMode handles PUT /orders/:id/tax-mode
func (h *OrderHandler) SetTaxMode(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.TaxModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	mode, ok := enum.ParseTaxMode(req.Mode)
	if !ok {
		response.BadRequest(c, "Unknown tax mode: "+req.Mode)
		return
	}

	order, err := h.orderService.SetTaxMode(c.Request.Context(), id, mode, req.Rate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax mode updated", order)
}
