// Package promo resolves promo codes to discount policies and applies them as
// a read-time projection over cart items.
package promo

import (
	"strings"

	"github.com/shopspring/decimal"

	"haruki-store-api/models"
	"haruki-store-api/pricing"
)

// codes maps a recognised promo code to its percentage discount.
var codes = map[string]float64{
	"HARUKI10": 10,
}

// Resolve maps a user-entered code to a discount policy. Lookup is
// deliberately forgiving: input is trimmed and uppercased first, so
// "haruki10" and " HARUKI10 " resolve the same as the canonical code.
// Unrecognised codes resolve to nil, never an error.
func Resolve(code string) *models.Promotion {
	code = strings.ToUpper(strings.TrimSpace(code))
	pct, ok := codes[code]
	if !ok {
		return nil
	}
	return &models.Promotion{Code: code, Pct: pct}
}

// ApplyDiscount returns a copy of items with each unit price scaled by
// (1 - pct/100). The input slice is never modified: the undiscounted items
// stay the source of truth and discounting happens again on every read.
// Non-finite prices and percentages are coerced to 0 rather than panicking;
// a persisted blob may carry any double.
func ApplyDiscount(items []models.CartLineItem, promotion *models.Promotion) []models.CartLineItem {
	discounted := make([]models.CartLineItem, len(items))
	copy(discounted, items)

	if promotion == nil {
		return discounted
	}

	pct := pricing.Sanitize(promotion.Pct)
	if pct <= 0 {
		return discounted
	}
	if pct > 100 {
		pct = 100
	}

	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(pct).Div(decimal.NewFromInt(100)))
	for i := range discounted {
		discounted[i].UnitPrice = decimal.NewFromFloat(pricing.Sanitize(discounted[i].UnitPrice)).
			Mul(factor).
			InexactFloat64()
	}
	return discounted
}
