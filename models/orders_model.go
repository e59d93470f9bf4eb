package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the operator-driven lifecycle of an order. Pending is the
// only valid initial value. Transitions are deliberately unrestricted: any
// status may move to any other through an explicit operator action.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every recognised status, in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// Valid reports whether s is a recognised status value.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrderRecord is the order header. Its line items live in a separate
// collection and are inserted in a second step; until that step succeeds the
// header is an orphan and must be surfaced for operator attention.
type OrderRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderCode     string             `bson:"orderCode" json:"orderCode"`
	CustomerName  string             `bson:"customerName" json:"customerName"`
	CustomerPhone string             `bson:"customerPhone" json:"customerPhone"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	Address       string             `bson:"address" json:"address"`
	Notes         string             `bson:"notes" json:"notes"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	Shipping      float64            `bson:"shipping" json:"shipping"`
	Total         float64            `bson:"total" json:"total"`
	Currency      string             `bson:"currency" json:"currency"`
	ToWhatsApp    string             `bson:"toWhatsApp,omitempty" json:"toWhatsApp,omitempty"`
	Status        OrderStatus        `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItemRecord is one persisted order line.
type OrderItemRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID   primitive.ObjectID `bson:"orderId" json:"orderId"`
	ProductID string             `bson:"productId" json:"productId"`
	VariantID string             `bson:"variantId,omitempty" json:"variantId,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Qty       int                `bson:"qty" json:"qty"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
	LineTotal float64            `bson:"lineTotal" json:"lineTotal"`
}
