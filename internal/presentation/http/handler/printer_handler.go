package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fenixpos/fenix-api/internal/application/service"
	"github.com/fenixpos/fenix-api/internal/presentation/http/dto/request"
	"github.com/fenixpos/fenix-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles print sink HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status handles GET /printer/status
func (h *PrinterHandler) Status(c *gin.Context) {
	status := h.printerService.Status(c.Request.Context())
	response.OK(c, "Printer status", status)
}

// Test handles POST /printer/test
func (h *PrinterHandler) Test(c *gin.Context) {
	var req request.TestPrintRequest
	// Body is optional; an empty body targets the default printer.
	_ = c.ShouldBindJSON(&req)

	if err := h.printerService.TestPrint(c.Request.Context(), req.Printer); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Test ticket sent", nil)
}
