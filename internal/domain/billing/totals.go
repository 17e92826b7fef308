// Package billing computes order totals. Everything here is pure: the
// same inputs always yield the same figures, and every monetary value
// is rounded to 2 decimal places at the point it is derived. Rounding
// each figure independently can leave subtotal+tax one cent away from
// a separately rounded total; that behavior is kept on purpose so that
// historical ticket totals stay reproducible, and it lives in this one
// package so the policy can be changed in a single place.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/fenixpos/fenix-api/internal/domain/enum"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// Line is the slice of an order line the engine needs.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Totals holds the derived figures for an order.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// round2 rounds half-up to 2 decimal places.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineAmount returns the stored amount for a line: unit price times
// quantity, rounded to 2 places.
func LineAmount(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return round2(unitPrice.Mul(decimal.NewFromInt(quantity)))
}

// ComputeTotals derives subtotal, tax and total from the live line
// list, the order's tax mode/rate snapshot, and the additive extras
// (delivery fee, rounding adjustment).
//
//	exempt:   tax = 0; total = subtotal + extras
//	itemized: tax = subtotal * rate/100; total = subtotal + tax + extras
//	included: line sum already contains tax; tax is backed out of it
func ComputeTotals(lines []Line, mode enum.TaxMode, taxRate, deliveryFee, adjustment decimal.Decimal) Totals {
	gross := decimal.Zero
	for _, l := range lines {
		gross = gross.Add(LineAmount(l.UnitPrice, l.Quantity))
	}

	extras := deliveryFee.Add(adjustment)

	var subtotal, tax, total decimal.Decimal
	switch mode {
	case enum.TaxModeItemized:
		subtotal = round2(gross)
		tax = round2(subtotal.Mul(taxRate.Div(hundred)))
		total = round2(subtotal.Add(tax).Add(extras))
	case enum.TaxModeIncluded:
		grossBeforeExtras := round2(gross)
		net := grossBeforeExtras.Div(one.Add(taxRate.Div(hundred)))
		tax = round2(grossBeforeExtras.Sub(net))
		subtotal = round2(grossBeforeExtras.Sub(tax))
		total = round2(grossBeforeExtras.Add(extras))
	default: // exempt
		subtotal = round2(gross)
		tax = decimal.Zero
		total = round2(subtotal.Add(extras))
	}

	return Totals{Subtotal: subtotal, Tax: tax, Total: total}
}
