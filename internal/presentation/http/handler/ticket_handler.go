package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fenixpos/fenix-api/internal/application/service"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/internal/presentation/http/dto/response"
)

// TicketHandler handles ticket HTTP requests
type TicketHandler struct {
	ticketService  *service.TicketService
	printerService *service.PrinterService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService, printerService *service.PrinterService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, printerService: printerService}
}

// Get handles GET /tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid ticket id")
		return
	}

	ticket, doc, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{
		"ticket":   ticket,
		"document": doc,
	}
	if c.Query("rendered") == "true" {
		payload["text"] = h.printerService.RenderTicketText(doc, 0)
	}
	response.OK(c, "Ticket retrieved", payload)
}

// Rebuild handles POST /tickets/:id/rebuild
func (h *TicketHandler) Rebuild(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid ticket id")
		return
	}

	ticket, doc, err := h.ticketService.Rebuild(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket rebuilt", gin.H{
		"ticket":   ticket,
		"document": doc,
	})
}

// Print handles POST /tickets/:id/print
func (h *TicketHandler) Print(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid ticket id")
		return
	}

	ticket, err := h.ticketService.Print(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket printed", ticket)
}

// Reprint handles POST /orders/:id/tickets/:kind/reprint
func (h *TicketHandler) Reprint(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	kind, ok := enum.ParseTicketKind(c.Param("kind"))
	if !ok {
		response.BadRequest(c, "Unknown ticket kind: "+c.Param("kind"))
		return
	}

	ticket, err := h.ticketService.ReprintLastOfKind(c.Request.Context(), orderID, kind, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket reprinted", ticket)
}

// ListForOrder handles GET /orders/:id/tickets
func (h *TicketHandler) ListForOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	tickets, err := h.ticketService.ListOrderTickets(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tickets retrieved", tickets)
}

// Audits handles GET /orders/:id/ticket-audits
func (h *TicketHandler) Audits(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order id")
		return
	}

	audits, err := h.ticketService.ListOrderAudits(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket audits retrieved", audits)
}
