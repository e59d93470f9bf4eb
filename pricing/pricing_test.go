package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"haruki-store-api/models"
)

func TestComputeTotals_ReferenceScenario(t *testing.T) {
	items := []models.CartLineItem{
		{Qty: 2, UnitPrice: 100},
		{Qty: 1, UnitPrice: 50},
	}

	totals := ComputeTotals(items, 20)

	assert.Equal(t, 250.0, totals.Subtotal)
	assert.Equal(t, 20.0, totals.Shipping)
	assert.Equal(t, 270.0, totals.Total)
}

func TestComputeTotals_ShippingIsAdditive(t *testing.T) {
	cases := [][]models.CartLineItem{
		{},
		{{Qty: 1, UnitPrice: 19.99}},
		{{Qty: 3, UnitPrice: 7.5}, {Qty: 2, UnitPrice: 120}},
		{{Qty: 10, UnitPrice: 0.1}},
	}

	for _, items := range cases {
		withShipping := ComputeTotals(items, 35)
		withoutShipping := ComputeTotals(items, 0)
		// Float addition of the two exact totals may be a ULP off.
		assert.InDelta(t, withoutShipping.Total+35, withShipping.Total, 1e-9)
		assert.Equal(t, withoutShipping.Subtotal, withShipping.Subtotal)
	}
}

func TestComputeTotals_MalformedValuesDegradeToZero(t *testing.T) {
	items := []models.CartLineItem{
		{Qty: 1, UnitPrice: math.NaN()},
		{Qty: 2, UnitPrice: math.Inf(1)},
		{Qty: 3, UnitPrice: 10},
	}

	totals := ComputeTotals(items, math.NaN())

	assert.Equal(t, 30.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 30.0, totals.Total)
}

func TestComputeTotals_DoesNotMutateInput(t *testing.T) {
	items := []models.CartLineItem{{Qty: 2, UnitPrice: 9.95}}

	ComputeTotals(items, 5)

	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, 9.95, items[0].UnitPrice)
}

func TestComputeTotals_NoDriftAcrossRepeatedCycles(t *testing.T) {
	// 0.1 is not representable in binary; a naive running float sum over
	// many add/remove cycles drifts. Recomputing in decimal must not.
	items := make([]models.CartLineItem, 0, 100)
	for i := 0; i < 100; i++ {
		items = append(items, models.CartLineItem{Qty: 1, UnitPrice: 0.1})
	}

	totals := ComputeTotals(items, 0)

	assert.Equal(t, 10.0, totals.Total)
}

func TestFormatCurrency(t *testing.T) {
	formatted := FormatCurrency(12.5, "USD")
	assert.Contains(t, formatted, "12.50")

	assert.Equal(t, "0.00 XXX-NOT-A-CODE", FormatCurrency(math.Inf(1), "XXX-NOT-A-CODE"))
	assert.Equal(t, "12.00 ", FormatCurrency(12, ""))
}
