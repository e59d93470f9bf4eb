// Package orders builds handoff messages and persists orders. Submission is
// a two-phase write (header, then items) shared by the customer checkout and
// the admin manual-order flow; the two external effects of a checkout — the
// messaging handoff and the persisted record — are independent, and each
// reports its own outcome.
package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"haruki-store-api/models"
	"haruki-store-api/pricing"
)

// Customer identifies who placed an order. Absent fields render as empty
// strings in the handoff message.
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// Draft is a fully priced order ready for submission.
type Draft struct {
	OrderCode  string
	Customer   Customer
	Notes      string
	Currency   string
	ToWhatsApp string
	Status     models.OrderStatus
	Items      []models.OrderItemRecord
	Totals     pricing.Totals
}

// OrderWriter is the persistence collaborator. The two insert calls are not
// transactional together; the composer owns their combined failure modes.
type OrderWriter interface {
	InsertOrder(ctx context.Context, order *models.OrderRecord) (primitive.ObjectID, error)
	InsertOrderItems(ctx context.Context, orderID primitive.ObjectID, items []models.OrderItemRecord) error
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) error
}

// Composer turns drafts into persisted orders.
type Composer struct {
	writer OrderWriter
	logger *zap.Logger
}

func NewComposer(writer OrderWriter, logger *zap.Logger) *Composer {
	return &Composer{writer: writer, logger: logger}
}

// Submit inserts the order header and then its items. An items failure after
// a successful header insert returns a PersistenceFailure with StageItems and
// the created record: the header exists, orphaned, awaiting an operator retry
// of the item phase. The header is never rolled back.
func (c *Composer) Submit(ctx context.Context, draft Draft) (*models.OrderRecord, error) {
	if len(draft.Items) == 0 {
		return nil, &ValidationError{Reason: "order has no line items"}
	}

	status := draft.Status
	if status == "" {
		status = models.OrderPending
	}
	if !status.Valid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown order status %q", status)}
	}

	now := time.Now().UTC()
	record := &models.OrderRecord{
		OrderCode:     draft.OrderCode,
		CustomerName:  draft.Customer.Name,
		CustomerPhone: draft.Customer.Phone,
		CustomerEmail: draft.Customer.Email,
		Address:       draft.Customer.Address,
		Notes:         draft.Notes,
		Subtotal:      draft.Totals.Subtotal,
		Shipping:      draft.Totals.Shipping,
		Total:         draft.Totals.Total,
		Currency:      draft.Currency,
		ToWhatsApp:    draft.ToWhatsApp,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := c.writer.InsertOrder(ctx, record)
	if err != nil {
		return nil, &PersistenceFailure{Stage: StageHeader, OrderCode: draft.OrderCode, Err: err}
	}
	record.ID = id

	items := make([]models.OrderItemRecord, len(draft.Items))
	copy(items, draft.Items)
	for i := range items {
		items[i].OrderID = id
	}

	if err := c.writer.InsertOrderItems(ctx, id, items); err != nil {
		c.logger.Error("order header saved but items failed, order is orphaned",
			zap.String("orderId", id.Hex()),
			zap.String("orderCode", draft.OrderCode),
			zap.Error(err))
		return record, &PersistenceFailure{
			Stage:     StageItems,
			OrderID:   id.Hex(),
			OrderCode: draft.OrderCode,
			Err:       err,
		}
	}

	c.logger.Info("order saved",
		zap.String("orderId", id.Hex()),
		zap.String("orderCode", draft.OrderCode),
		zap.Float64("total", draft.Totals.Total),
		zap.Int("items", len(items)))

	return record, nil
}

// SetStatus applies an operator status transition. Any current status may
// move to any recognised one.
func (c *Composer) SetStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) error {
	if !status.Valid() {
		return &ValidationError{Reason: fmt.Sprintf("unknown order status %q", status)}
	}
	return c.writer.UpdateStatus(ctx, orderID, status)
}

// ComposeHandoffMessage renders the deterministic, line-oriented text payload
// dispatched to the messaging channel. Construction never fails.
func ComposeHandoffMessage(orderCode string, customer Customer, items []models.OrderItemRecord, totals pricing.Totals, notes, currencyCode string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order ID: %s\n", orderCode)
	fmt.Fprintf(&b, "Name: %s | Phone: %s | Email: %s\n", customer.Name, customer.Phone, customer.Email)
	fmt.Fprintf(&b, "Address: %s\n", customer.Address)
	b.WriteString("Items:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s / %s) x%d @ %s %s = %.2f\n",
			item.Title, item.Size, item.Color, item.Qty,
			strconv.FormatFloat(item.UnitPrice, 'f', -1, 64), currencyCode,
			item.LineTotal)
	}
	fmt.Fprintf(&b, "Subtotal: %.2f %s\n", totals.Subtotal, currencyCode)
	fmt.Fprintf(&b, "Shipping: %.2f %s\n", totals.Shipping, currencyCode)
	fmt.Fprintf(&b, "TOTAL: %.2f %s\n", totals.Total, currencyCode)
	fmt.Fprintf(&b, "Notes: %s", notes)

	return b.String()
}

// ItemsFromCartLines converts discounted cart lines into order item records,
// computing each line total in decimal.
func ItemsFromCartLines(lines []models.CartLineItem) []models.OrderItemRecord {
	items := make([]models.OrderItemRecord, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItemRecord{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Title:     line.Title,
			Size:      line.Size,
			Color:     line.Color,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			LineTotal: lineTotal(line.Qty, line.UnitPrice),
		})
	}
	return items
}

// NewOrderCode generates an operator-facing order code.
func NewOrderCode() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%s-%s", ts, suffix)
}

func lineTotal(qty int, unitPrice float64) float64 {
	return decimal.NewFromFloat(pricing.Sanitize(unitPrice)).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2).
		InexactFloat64()
}
