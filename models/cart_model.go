package models

// DefaultShipping is the shipping cost applied to carts that never set one,
// in store currency units.
const DefaultShipping = 20

// CartLineItem is one product/variant selection in a cart. Two items with the
// same (ProductID, VariantID) are the same line and must be merged, never
// duplicated.
type CartLineItem struct {
	ProductID string  `bson:"productId" json:"productId" validate:"required"`
	VariantID string  `bson:"variantId,omitempty" json:"variantId,omitempty"`
	Title     string  `bson:"title" json:"title" validate:"required"`
	Qty       int     `bson:"qty" json:"qty" validate:"required,gt=0"`
	Size      string  `bson:"size,omitempty" json:"size,omitempty"`
	Color     string  `bson:"color,omitempty" json:"color,omitempty"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice" validate:"gte=0"`
}

// SameLine reports whether other addresses the same cart line.
func (i CartLineItem) SameLine(other CartLineItem) bool {
	return i.ProductID == other.ProductID && i.VariantID == other.VariantID
}

// Promotion is a percentage-off discount policy resolved from a promo code.
type Promotion struct {
	Code string  `bson:"code" json:"code"`
	Pct  float64 `bson:"pct" json:"pct"`
}

// CartState is the full client cart: items, the applied promotion, the chosen
// shipping cost and the wishlist. Items hold undiscounted unit prices; the
// promotion is applied as a read-time projection only.
type CartState struct {
	Items    []CartLineItem `bson:"items" json:"items"`
	Promo    *Promotion     `bson:"promo,omitempty" json:"promo,omitempty"`
	Shipping float64        `bson:"shipping" json:"shipping"`
	Wishlist []string       `bson:"wishlist" json:"wishlist"`
}

// DefaultCartState is the state of a cart that has never been persisted.
func DefaultCartState() CartState {
	return CartState{
		Items:    []CartLineItem{},
		Shipping: DefaultShipping,
		Wishlist: []string{},
	}
}

// Normalize fills in the zero values a decoded blob may be missing so that
// consumers never see nil slices. Called once at the deserialization boundary.
func (s *CartState) Normalize() {
	if s.Items == nil {
		s.Items = []CartLineItem{}
	}
	if s.Wishlist == nil {
		s.Wishlist = []string{}
	}
	if s.Shipping < 0 {
		s.Shipping = 0
	}
}
