// Package pricing converts line items into totals and formats money for
// display. Every function here is pure and total: malformed input degrades to
// zero, nothing errors, nothing mutates its arguments.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"haruki-store-api/models"
)

// Totals is derived from an item list, never stored.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums qty*unitPrice over items and adds shipping. The sum runs
// in decimal and is rounded once at the end, so repeated add/remove cycles
// cannot accumulate float drift: callers always recompute from the
// authoritative item list rather than adjusting a running total.
func ComputeTotals(items []models.CartLineItem, shipping float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(
			decimal.NewFromFloat(Sanitize(item.UnitPrice)).
				Mul(decimal.NewFromInt(int64(item.Qty))),
		)
	}

	ship := decimal.NewFromFloat(Sanitize(shipping)).Round(2)
	subtotal = subtotal.Round(2)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Shipping: ship.InexactFloat64(),
		Total:    subtotal.Add(ship).Round(2).InexactFloat64(),
	}
}

// FormatCurrency renders amount as a localized currency string. A non-finite
// amount is coerced to 0; an unknown currency code falls back to plain
// two-decimal formatting with the raw code appended.
func FormatCurrency(amount float64, currencyCode string) string {
	amount = Sanitize(amount)

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, currencyCode)
	}

	printer := message.NewPrinter(language.English)
	return printer.Sprint(currency.Symbol(unit.Amount(amount)))
}

// Sanitize coerces non-finite values to 0 so they never poison a total.
// Every money value must pass through here before entering decimal
// arithmetic: decimal construction panics on NaN and infinity.
func Sanitize(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
