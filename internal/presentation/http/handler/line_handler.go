package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/application/service"
	"github.com/fenixpos/fenix-api/internal/presentation/http/dto/request"
	"github.com/fenixpos/fenix-api/internal/presentation/http/dto/response"
)

// LineHandler handles order line HTTP requests
type LineHandler struct {
	lineService *service.LineService
}

// NewLineHandler creates a new line handler
func NewLineHandler(lineService *service.LineService) *LineHandler {
	return &LineHandler{lineService: lineService}
}

// List handles GET /orders/:id/lines
func (h *LineHandler) List(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	lines, err := h.lineService.ListLines(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Lines retrieved", lines)
}

// Add handles POST /orders/:id/lines
func (h *LineHandler) Add(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	order, err := h.lineService.AddLine(c.Request.Context(), orderID, &service.AddLineInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Line added", order)
}

// UpdateQuantity handles PUT /orders/:id/lines/:lineId
func (h *LineHandler) UpdateQuantity(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}
	lineID, ok := parseIDParam(c, "lineId")
	if !ok {
		response.BadRequest(c, "Invalid line id")
		return
	}

	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.lineService.UpdateQuantity(c.Request.Context(), orderID, lineID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line updated", order)
}

// Remove handles DELETE /orders/:id/lines/:lineId
func (h *LineHandler) Remove(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}
	lineID, ok := parseIDParam(c, "lineId")
	if !ok {
		response.BadRequest(c, "Invalid line id")
		return
	}

	order, err := h.lineService.RemoveLine(c.Request.Context(), orderID, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", order)
}
