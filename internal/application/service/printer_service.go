package service

import (
	"context"
	"time"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/pkg/apperror"
	"github.com/fenixpos/fenix-api/pkg/printer"
)

// PrinterService renders ticket documents to fixed-width text and
// delivers them to the configured print sink. A restaurant can point
// at its own sink endpoint; everything else goes to the default one.
type PrinterService struct {
	sink         printer.Sink
	sinkFor      func(endpoint string) printer.Sink
	defaultPaper int
}

// NewPrinterService creates a new printer service. sinkFor builds a
// sink for a restaurant-specific endpoint and may be nil when only the
// default sink exists.
func NewPrinterService(sink printer.Sink, sinkFor func(endpoint string) printer.Sink, defaultPaper int) *PrinterService {
	if defaultPaper <= 0 {
		defaultPaper = printer.Width80mm
	}
	return &PrinterService{sink: sink, sinkFor: sinkFor, defaultPaper: defaultPaper}
}

func (s *PrinterService) sinkAt(endpoint string) printer.Sink {
	if endpoint != "" && s.sinkFor != nil {
		return s.sinkFor(endpoint)
	}
	return s.sink
}

// RenderTicketText flattens a document into printable lines for the
// given paper width.
func (s *PrinterService) RenderTicketText(doc *entity.TicketDocument, width int) string {
	if width <= 0 {
		width = s.defaultPaper
	}
	d := printer.NewDocument(width)

	switch doc.Kind {
	case enum.TicketKindKitchen:
		renderKitchen(d, doc)
	case enum.TicketKindCancellation:
		renderCancellation(d, doc)
	default:
		renderSale(d, doc)
	}
	return d.String()
}

// Deliver posts one rendered job, translating sink failures into the
// delivery error taxonomy. An empty endpoint uses the default sink.
func (s *PrinterService) Deliver(ctx context.Context, endpoint string, job *printer.Job) error {
	if err := s.sinkAt(endpoint).Print(ctx, job); err != nil {
		return apperror.NewPrintDeliveryError(err.Error())
	}
	return nil
}

// PrinterStatus reports sink reachability for the status endpoint.
type PrinterStatus struct {
	Online   bool     `json:"online"`
	Printers []string `json:"printers"`
	Detail   string   `json:"detail,omitempty"`
}

// Status pings the sink and reports the printers it exposes.
func (s *PrinterService) Status(ctx context.Context) *PrinterStatus {
	printers, err := s.sink.Ping(ctx)
	if err != nil {
		return &PrinterStatus{Online: false, Detail: err.Error()}
	}
	return &PrinterStatus{Online: true, Printers: printers}
}

// TestPrint sends a short diagnostic ticket to the named printer.
func (s *PrinterService) TestPrint(ctx context.Context, printerName string) error {
	d := printer.NewDocument(s.defaultPaper)
	d.Center("*** PRUEBA DE IMPRESION ***").
		BlankLine().
		Center("Si puede leer esto,").
		Center("la impresora funciona.").
		BlankLine().
		Center(time.Now().Format("2006-01-02 15:04:05"))

	job := &printer.Job{
		Printer: printerName,
		Paper:   paperToken(s.defaultPaper),
		Kind:    "test",
		Content: d.String(),
	}
	return s.Deliver(ctx, "", job)
}

// paperToken maps a character width to the wire token the sink expects.
func paperToken(width int) string {
	if width <= printer.Width58mm {
		return "58"
	}
	return "80"
}

func renderHeader(d *printer.Document, doc *entity.TicketDocument) {
	h := doc.Header
	d.Center(h.RestaurantName)
	if h.AddressLine1 != "" {
		d.Center(h.AddressLine1)
	}
	if h.AddressLine2 != "" {
		d.Center(h.AddressLine2)
	}
	if h.TaxID != "" {
		d.Center("RFC: " + h.TaxID)
	}
	if h.Phone != "" {
		d.Center("Tel: " + h.Phone)
	}
	d.Separator('-')
}

func renderOrderInfo(d *printer.Document, doc *entity.TicketDocument) {
	h := doc.Header
	if h.Folio != "" {
		d.KeyValue("Folio", h.Folio)
	}
	if h.TableName != "" {
		d.KeyValue("Mesa", h.TableName)
	}
	d.KeyValue("Tipo", h.OrderKind)
	if h.Cashier != "" {
		d.KeyValue("Cajero", h.Cashier)
	}
	d.KeyValue("Fecha", h.IssuedAt)
	d.Separator('-')
}

func renderSale(d *printer.Document, doc *entity.TicketDocument) {
	renderHeader(d, doc)
	renderOrderInfo(d, doc)

	for _, item := range doc.Items {
		amount := ""
		if item.Amount != nil {
			amount = item.Amount.StringFixed(2)
		}
		d.ItemLine(item.Quantity, item.Name, amount)
	}
	d.Separator('-')

	if t := doc.Totals; t != nil {
		d.KeyValue("Subtotal", t.Subtotal.StringFixed(2))
		if t.ShowTax && !t.Tax.IsZero() {
			d.KeyValue("IVA ("+doc.Header.TaxRate.StringFixed(2)+"%)", t.Tax.StringFixed(2))
		}
		if !t.DeliveryFee.IsZero() {
			d.KeyValue("Envio", t.DeliveryFee.StringFixed(2))
		}
		if !t.RoundingAdjustment.IsZero() {
			d.KeyValue("Ajuste", t.RoundingAdjustment.StringFixed(2))
		}
		d.KeyValue("TOTAL", t.Total.StringFixed(2))
		d.Separator('-')
	}

	for _, p := range doc.Payments {
		d.KeyValue("Pago "+p.Method, p.Amount.StringFixed(2))
	}
	if len(doc.Payments) > 0 {
		d.Separator('-')
	}

	d.Center("Gracias por su visita")
	if doc.QR != "" {
		d.BlankLine()
		d.Center(doc.QR)
	}
}

func renderKitchen(d *printer.Document, doc *entity.TicketDocument) {
	d.Center("*** COCINA ***")
	d.Separator('=')
	renderOrderInfo(d, doc)

	for _, item := range doc.Items {
		d.QtyLine(item.Quantity, item.Name)
	}
	d.Separator('=')
}

func renderCancellation(d *printer.Document, doc *entity.TicketDocument) {
	renderHeader(d, doc)
	d.Center("*** ORDEN CANCELADA ***")
	d.Separator('-')

	if o := doc.Order; o != nil {
		d.KeyValue("Orden", shortID(o.OrderID.String()))
		d.KeyValue("Estado previo", o.PriorStatus)
		d.KeyValue("Tipo", o.OrderKind)
		if o.TableName != "" {
			d.KeyValue("Mesa", o.TableName)
		}
		d.KeyValue("Subtotal", o.Subtotal.StringFixed(2))
		d.KeyValue("Total", o.Total.StringFixed(2))
	}
	d.KeyValue("Fecha", doc.Header.IssuedAt)
	d.Separator('-')
}

// shortID keeps ticket lines narrow by printing only the first UUID block.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
