package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fenixpos/fenix-api/internal/domain/entity"
	"github.com/fenixpos/fenix-api/internal/domain/enum"
	"github.com/fenixpos/fenix-api/pkg/apperror"
	"github.com/fenixpos/fenix-api/pkg/utils"
)

// ticketTimeLayout is the timestamp format printed on tickets.
const ticketTimeLayout = "2006-01-02 15:04"

// missingTablePlaceholder is printed when a dine-in order lost its
// table reference.
const missingTablePlaceholder = "N/A"

// BuildTicketInput carries everything document assembly needs. All of
// it comes from persisted rows, so rebuilding with the same input
// yields byte-identical content.
type BuildTicketInput struct {
	Order       *entity.Order
	Restaurant  *entity.Restaurant
	Config      *entity.RestaurantConfig
	Kind        enum.TicketKind
	TicketID    uuid.UUID
	GeneratedBy *uuid.UUID
	GeneratedAt time.Time
}

// BuildTicketDocument assembles the document for one ticket kind from
// an order snapshot. Pure: no clock reads, no storage access.
func BuildTicketDocument(in *BuildTicketInput) (*entity.TicketDocument, error) {
	if in.Order == nil || in.Restaurant == nil || in.Config == nil {
		return nil, apperror.NewTicketBuildError("incomplete order snapshot")
	}
	order := in.Order

	switch in.Kind {
	case enum.TicketKindKitchen:
		if len(order.Lines) == 0 {
			return nil, apperror.NewTicketBuildError("order has no lines")
		}
	case enum.TicketKindSale:
		if order.Status != enum.OrderStatusPaid {
			return nil, apperror.NewTicketBuildError("order is not paid")
		}
		if len(order.Lines) == 0 {
			return nil, apperror.NewTicketBuildError("order has no lines")
		}
	case enum.TicketKindCancellation:
		if order.Status != enum.OrderStatusCancelled {
			return nil, apperror.NewTicketBuildError("order is not cancelled")
		}
	default:
		return nil, apperror.NewTicketBuildError(fmt.Sprintf("unknown ticket kind %d", in.Kind))
	}

	doc := &entity.TicketDocument{
		Kind:   in.Kind,
		Header: buildHeader(in),
		Meta: entity.TicketMeta{
			TicketID:     in.TicketID,
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			GeneratedBy:  in.GeneratedBy,
			GeneratedAt:  in.GeneratedAt.UTC().Format(time.RFC3339),
		},
	}

	switch in.Kind {
	case enum.TicketKindKitchen:
		for _, l := range order.Lines {
			doc.Items = append(doc.Items, entity.TicketItem{
				Name:     l.ProductName,
				Quantity: l.Quantity,
			})
		}

	case enum.TicketKindSale:
		for _, l := range order.Lines {
			price := l.UnitPrice
			amount := l.Amount
			doc.Items = append(doc.Items, entity.TicketItem{
				Name:      l.ProductName,
				SKU:       l.ProductSKU,
				Quantity:  l.Quantity,
				UnitPrice: &price,
				Amount:    &amount,
			})
		}
		doc.Totals = &entity.TicketTotals{
			Subtotal:           order.SubTotal,
			Tax:                order.Tax,
			ShowTax:            showTax(order.TaxMode, in.Config),
			DeliveryFee:        order.DeliveryFee,
			RoundingAdjustment: order.RoundingAdjustment,
			Total:              order.Total,
		}
		for _, p := range order.Payments {
			doc.Payments = append(doc.Payments, entity.TicketPayment{
				Method: p.Method,
				Amount: p.Amount,
				Note:   p.Note,
			})
		}
		doc.QR = fmt.Sprintf("%s|%s|%s", in.Restaurant.Slug, doc.Header.Folio, order.Total.StringFixed(2))

	case enum.TicketKindCancellation:
		doc.Order = &entity.CancelledOrderSummary{
			OrderID:     order.ID,
			PriorStatus: priorStatus(order),
			OrderKind:   order.Kind.String(),
			TableName:   tableName(order),
			Subtotal:    order.SubTotal,
			Total:       order.Total,
		}
	}

	return doc, nil
}

// MarshalTicketDocument serializes a document for storage. Field order
// is fixed by the struct definition, so equal documents serialize to
// equal bytes.
func MarshalTicketDocument(doc *entity.TicketDocument) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", apperror.NewTicketBuildError("encode document: " + err.Error())
	}
	return string(b), nil
}

// UnmarshalTicketDocument parses stored ticket content. An error means
// the content is corrupt and the caller should rebuild.
func UnmarshalTicketDocument(content string) (*entity.TicketDocument, error) {
	if content == "" {
		return nil, apperror.NewTicketBuildError("empty ticket content")
	}
	var doc entity.TicketDocument
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, apperror.NewTicketBuildError("decode document: " + err.Error())
	}
	if doc.Header.RestaurantName == "" {
		return nil, apperror.NewTicketBuildError("document missing header")
	}
	return &doc, nil
}

func buildHeader(in *BuildTicketInput) entity.TicketHeader {
	order := in.Order
	line1, line2 := in.Restaurant.AddressLines()

	header := entity.TicketHeader{
		RestaurantName: in.Restaurant.Name,
		AddressLine1:   line1,
		AddressLine2:   line2,
		TaxID:          in.Restaurant.TaxID,
		Phone:          in.Restaurant.Phone,
		OrderKind:      order.Kind.String(),
		IssuedAt:       issuedAt(order, in.Kind, in.GeneratedAt),
		Currency:       in.Config.Currency,
		TaxMode:        order.TaxMode.String(),
		TaxRate:        order.TaxRate,
	}

	if order.Kind == enum.OrderKindDineIn {
		header.TableName = tableName(order)
	}
	if order.User != nil {
		header.Cashier = order.User.Name
	}
	if in.Kind == enum.TicketKindSale && order.Folio > 0 {
		header.Folio = utils.FormatFolio(in.Config.FolioSeries, order.Folio)
	}
	return header
}

// issuedAt picks the business timestamp for the header: the pay time
// on sale tickets, the cancel time on cancellation tickets, otherwise
// the generation time.
func issuedAt(order *entity.Order, kind enum.TicketKind, generatedAt time.Time) string {
	switch {
	case kind == enum.TicketKindSale && order.PaidAt != nil:
		return order.PaidAt.Format(ticketTimeLayout)
	case kind == enum.TicketKindCancellation && order.CancelledAt != nil:
		return order.CancelledAt.Format(ticketTimeLayout)
	}
	return generatedAt.Format(ticketTimeLayout)
}

func tableName(order *entity.Order) string {
	if order.Kind != enum.OrderKindDineIn {
		return ""
	}
	if order.Table == nil || order.Table.Name == "" {
		return missingTablePlaceholder
	}
	return order.Table.Name
}

// showTax decides whether the tax row prints. Itemized mode always
// shows it; included mode only when the restaurant opts in; exempt
// never has one.
func showTax(mode enum.TaxMode, config *entity.RestaurantConfig) bool {
	switch mode {
	case enum.TaxModeItemized:
		return true
	case enum.TaxModeIncluded:
		return config.ShowItemizedTax
	}
	return false
}

func priorStatus(order *entity.Order) string {
	if order.CancelledFrom != nil {
		return order.CancelledFrom.String()
	}
	return order.Status.String()
}
