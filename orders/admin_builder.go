package orders

import (
	"context"
	"errors"
	"fmt"

	"haruki-store-api/models"
	"haruki-store-api/pricing"
)

// ErrProductNotFound marks a selection referencing a product the catalog does
// not know.
var ErrProductNotFound = errors.New("product not found")

// Selection is one operator-entered product + quantity pair.
type Selection struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CatalogReader is the read-only catalog collaborator used for price lookup.
type CatalogReader interface {
	ProductByID(ctx context.Context, id string) (*models.Product, error)
}

// ManualOrderInput is the operator-assembled order form.
type ManualOrderInput struct {
	OrderCode  string             `json:"orderCode"`
	Status     models.OrderStatus `json:"status"`
	Customer   Customer           `json:"customer"`
	Notes      string             `json:"notes"`
	Shipping   float64            `json:"shipping"`
	Currency   string             `json:"currency"`
	ToWhatsApp string             `json:"toWhatsApp"`
	Selections []Selection        `json:"selections"`
}

// BuildManualOrder prices an operator-assembled selection list against the
// catalog snapshot and folds it into a Draft with the same totals shape as
// the customer flow. Selections with an empty product id or a non-positive
// quantity are dropped; if nothing valid remains the order is rejected before
// any side effect. Each surviving selection must resolve in the catalog.
func BuildManualOrder(ctx context.Context, catalog CatalogReader, in ManualOrderInput) (Draft, error) {
	valid := make([]Selection, 0, len(in.Selections))
	for _, sel := range in.Selections {
		if sel.ProductID == "" || sel.Qty <= 0 {
			continue
		}
		valid = append(valid, sel)
	}
	if len(valid) == 0 {
		return Draft{}, &ValidationError{Reason: "add at least one product to the order"}
	}

	items := make([]models.OrderItemRecord, 0, len(valid))
	for _, sel := range valid {
		product, err := catalog.ProductByID(ctx, sel.ProductID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				return Draft{}, &ValidationError{
					Reason: fmt.Sprintf("product %s does not exist", sel.ProductID),
				}
			}
			return Draft{}, err
		}

		items = append(items, models.OrderItemRecord{
			ProductID: sel.ProductID,
			Title:     product.Title,
			Qty:       sel.Qty,
			UnitPrice: product.BasePrice,
			LineTotal: lineTotal(sel.Qty, product.BasePrice),
		})
	}

	orderCode := in.OrderCode
	if orderCode == "" {
		orderCode = NewOrderCode()
	}

	return Draft{
		OrderCode:  orderCode,
		Customer:   in.Customer,
		Notes:      in.Notes,
		Currency:   in.Currency,
		ToWhatsApp: in.ToWhatsApp,
		Status:     in.Status,
		Items:      items,
		Totals:     totalsFromItems(items, in.Shipping),
	}, nil
}

// totalsFromItems folds order items into the shared Totals shape.
func totalsFromItems(items []models.OrderItemRecord, shipping float64) pricing.Totals {
	lines := make([]models.CartLineItem, len(items))
	for i, item := range items {
		lines[i] = models.CartLineItem{Qty: item.Qty, UnitPrice: item.UnitPrice}
	}
	return pricing.ComputeTotals(lines, shipping)
}
