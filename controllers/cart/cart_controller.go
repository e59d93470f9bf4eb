package cartController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"haruki-store-api/models"
	"haruki-store-api/pricing"
	"haruki-store-api/promo"
	"haruki-store-api/responses"
	"haruki-store-api/store"
)

var validate = validator.New()

// Handler serves the customer cart endpoints. The cart key is a
// client-generated id sent in the X-Cart-Key header.
type Handler struct {
	carts    *store.Manager
	currency string
	logger   *zap.Logger
}

func NewHandler(carts *store.Manager, currency string, logger *zap.Logger) *Handler {
	return &Handler{carts: carts, currency: currency, logger: logger}
}

type AddItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	VariantID string  `json:"variantId"`
	Title     string  `json:"title" validate:"required"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

type UpdateQuantityRequest struct {
	Index int `json:"index" validate:"gte=0"`
	Qty   int `json:"qty"`
}

type RemoveItemRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

type WishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type PromoRequest struct {
	Code string `json:"code"`
}

type ShippingRequest struct {
	Value float64 `json:"value"`
}

// GetCart returns the raw state plus the discounted projection and totals.
func (h *Handler) GetCart(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	key, ok := cartKey(c)
	if !ok {
		return badRequest(c, "X-Cart-Key header is required")
	}

	state := h.carts.Cart(ctx, key).State()
	return h.respondWithState(c, "Cart fetched successfully", state)
}

func (h *Handler) AddItem(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	key, ok := cartKey(c)
	if !ok {
		return badRequest(c, "X-Cart-Key header is required")
	}

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Invalid item: "+err.Error())
	}

	state := h.carts.Cart(ctx, key).Add(ctx, models.CartLineItem{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Title:     req.Title,
		Qty:       req.Qty,
		Size:      req.Size,
		Color:     req.Color,
		UnitPrice: req.UnitPrice,
	})
	return h.respondWithState(c, "Item added to cart", state)
}

func (h *Handler) UpdateQuantity(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	key, ok := cartKey(c)
	if !ok {
		return badRequest(c, "X-Cart-Key header is required")
	}

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Invalid index")
	}

	state := h.carts.Cart(ctx, key).UpdateQuantity(ctx, req.Index, req.Qty)
	return h.respondWithState(c, "Quantity updated", state)
}

func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	key, ok := cartKey(c)
	if !ok {
		return badRequest(c, "X-Cart-Key header is required")
	}

	var req RemoveItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	state := h.carts.Cart(ctx, key).Remove(ctx, req.Index)
	return h.respondWithState(c, "Item removed", state)
}

func (h *Handler) ClearCart(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	key, ok := cartKey(c)
	if !ok {
		return badRequest(c, "X-Cart-Key header is required")
	}

	state := h.carts.Cart(ctx, key).Clear(ctx)
	return h.respondWithState(c, "Cart cleared", state)
}

func (h *Handler) ToggleWishlist(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	key, ok := cartKey(c)
	if !ok {
		return badRequest(c, "X-Cart-Key header is required")
	}

	var req WishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Product ID is required")
	}

	state := h.carts.Cart(ctx, key).ToggleWishlist(ctx, req.ProductID)
	return h.respondWithState(c, "Wishlist updated", state)
}

func (h *Handler) SetPromo(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	key, ok := cartKey(c)
	if !ok {
		return badRequest(c, "X-Cart-Key header is required")
	}

	var req PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	state := h.carts.Cart(ctx, key).SetPromo(ctx, req.Code)
	message := "Promo applied"
	if state.Promo == nil {
		message = "Promo code not recognised, promotion cleared"
	}
	return h.respondWithState(c, message, state)
}

func (h *Handler) SetShipping(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	key, ok := cartKey(c)
	if !ok {
		return badRequest(c, "X-Cart-Key header is required")
	}

	var req ShippingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	state := h.carts.Cart(ctx, key).SetShipping(ctx, req.Value)
	return h.respondWithState(c, "Shipping updated", state)
}

// respondWithState renders the state with its read-time discounted view and
// recomputed totals.
func (h *Handler) respondWithState(c *fiber.Ctx, message string, state models.CartState) error {
	discounted := promo.ApplyDiscount(state.Items, state.Promo)
	totals := pricing.ComputeTotals(discounted, state.Shipping)

	return c.Status(fiber.StatusOK).JSON(responses.StoreResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result: &fiber.Map{
			"cart":            state,
			"discountedItems": discounted,
			"totals":          totals,
			"formattedTotal":  pricing.FormatCurrency(totals.Total, h.currency),
		},
	})
}

func cartKey(c *fiber.Ctx) (string, bool) {
	key := c.Get("X-Cart-Key")
	return key, key != ""
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.StoreResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 10*time.Second)
}
