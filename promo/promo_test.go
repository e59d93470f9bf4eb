package promo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haruki-store-api/models"
	"haruki-store-api/pricing"
)

func TestResolve_KnownCode(t *testing.T) {
	promotion := Resolve("HARUKI10")

	require.NotNil(t, promotion)
	assert.Equal(t, "HARUKI10", promotion.Code)
	assert.Equal(t, 10.0, promotion.Pct)
}

func TestResolve_TrimsAndUppercases(t *testing.T) {
	promotion := Resolve("  haruki10 ")

	require.NotNil(t, promotion)
	assert.Equal(t, "HARUKI10", promotion.Code)
}

func TestResolve_UnknownCodeIsNil(t *testing.T) {
	assert.Nil(t, Resolve("FOO"))
	assert.Nil(t, Resolve(""))
}

func TestApplyDiscount_ScalesUnitPrices(t *testing.T) {
	items := []models.CartLineItem{{ProductID: "p1", Qty: 2, UnitPrice: 100}}

	discounted := ApplyDiscount(items, Resolve("HARUKI10"))
	totals := pricing.ComputeTotals(discounted, 0)

	assert.Equal(t, 180.0, totals.Subtotal)
	// Source items stay undiscounted.
	assert.Equal(t, 100.0, items[0].UnitPrice)
}

func TestApplyDiscount_UnrecognisedCodeLeavesPricesAlone(t *testing.T) {
	items := []models.CartLineItem{{ProductID: "p1", Qty: 2, UnitPrice: 100}}

	discounted := ApplyDiscount(items, Resolve("FOO"))
	totals := pricing.ComputeTotals(discounted, 0)

	assert.Equal(t, 200.0, totals.Subtotal)
}

func TestApplyDiscount_NilPromotionCopies(t *testing.T) {
	items := []models.CartLineItem{{ProductID: "p1", Qty: 1, UnitPrice: 42}}

	discounted := ApplyDiscount(items, nil)

	require.Len(t, discounted, 1)
	discounted[0].UnitPrice = 1
	assert.Equal(t, 42.0, items[0].UnitPrice)
}

func TestApplyDiscount_MalformedValuesDegradeToZero(t *testing.T) {
	items := []models.CartLineItem{
		{ProductID: "p1", Qty: 1, UnitPrice: math.NaN()},
		{ProductID: "p2", Qty: 2, UnitPrice: math.Inf(1)},
		{ProductID: "p3", Qty: 1, UnitPrice: 100},
	}

	discounted := ApplyDiscount(items, Resolve("HARUKI10"))

	assert.Equal(t, 0.0, discounted[0].UnitPrice)
	assert.Equal(t, 0.0, discounted[1].UnitPrice)
	assert.Equal(t, 90.0, discounted[2].UnitPrice)
}

func TestApplyDiscount_NonFinitePctLeavesPricesAlone(t *testing.T) {
	items := []models.CartLineItem{{ProductID: "p1", Qty: 1, UnitPrice: 50}}

	for _, pct := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		discounted := ApplyDiscount(items, &models.Promotion{Code: "X", Pct: pct})
		assert.Equal(t, 50.0, discounted[0].UnitPrice)
	}
}

func TestApplyDiscount_PctClampedAtFullPrice(t *testing.T) {
	items := []models.CartLineItem{{Qty: 1, UnitPrice: 50}}

	discounted := ApplyDiscount(items, &models.Promotion{Code: "X", Pct: 250})

	assert.Equal(t, 0.0, discounted[0].UnitPrice)
}
