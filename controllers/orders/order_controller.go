package orderController

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"haruki-store-api/orders"
	"haruki-store-api/pricing"
	"haruki-store-api/promo"
	"haruki-store-api/responses"
	"haruki-store-api/store"
)

var validate = validator.New()

// Handler serves the customer checkout flow. A per-cart in-flight guard
// rejects a second submission while one is running, so a double-click cannot
// create a duplicate order.
type Handler struct {
	carts       *store.Manager
	composer    *orders.Composer
	destination string
	currency    string
	logger      *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewHandler(carts *store.Manager, composer *orders.Composer, destination, currency string, logger *zap.Logger) *Handler {
	return &Handler{
		carts:       carts,
		composer:    composer,
		destination: destination,
		currency:    currency,
		logger:      logger,
		inFlight:    make(map[string]bool),
	}
}

type CheckoutRequest struct {
	Customer orders.Customer `json:"customer" validate:"required"`
	Notes    string          `json:"notes"`
}

// Checkout performs the two checkout effects: it prepares the messaging
// handoff and persists the order. The effects are independent; the response
// carries a separate outcome block for each so the customer can be told
// exactly what succeeded. The cart is cleared only when the order (header and
// items) was fully persisted.
func (h *Handler) Checkout(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	key := c.Get("X-Cart-Key")
	if key == "" {
		return respond(c, fiber.StatusBadRequest, "X-Cart-Key header is required", nil)
	}

	if !h.acquire(key) {
		return respond(c, fiber.StatusConflict, "An order submission is already in flight for this cart", nil)
	}
	defer h.release(key)

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := validate.Struct(req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid customer details: "+err.Error(), nil)
	}

	cart := h.carts.Cart(ctx, key)
	state := cart.State()
	if len(state.Items) == 0 {
		return respond(c, fiber.StatusBadRequest, "Cart is empty", nil)
	}

	discounted := promo.ApplyDiscount(state.Items, state.Promo)
	totals := pricing.ComputeTotals(discounted, state.Shipping)
	items := orders.ItemsFromCartLines(discounted)
	orderCode := uuid.NewString()

	message := orders.ComposeHandoffMessage(orderCode, req.Customer, items, totals, req.Notes, h.currency)

	// Effect 1: messaging handoff. Failure here is a warning, never a
	// reason to skip persistence.
	handoffResult := fiber.Map{"dispatched": false}
	if handoff, err := orders.NewHandoff(h.destination, message); err != nil {
		h.logger.Warn("handoff unavailable", zap.String("orderCode", orderCode), zap.Error(err))
		handoffResult["warning"] = err.Error()
		handoffResult["message"] = message
	} else {
		handoffResult = fiber.Map{
			"dispatched":  true,
			"message":     handoff.Message,
			"url":         handoff.URL,
			"fallbackUrl": handoff.FallbackURL,
		}
	}

	// Effect 2: order persistence.
	record, err := h.composer.Submit(ctx, orders.Draft{
		OrderCode:  orderCode,
		Customer:   req.Customer,
		Notes:      req.Notes,
		Currency:   h.currency,
		ToWhatsApp: h.destination,
		Items:      items,
		Totals:     totals,
	})
	if err != nil {
		var persistErr *orders.PersistenceFailure
		if errors.As(err, &persistErr) && persistErr.Orphaned() {
			return respond(c, fiber.StatusInternalServerError,
				"Order was saved without its items and needs operator attention", &fiber.Map{
					"handoff": handoffResult,
					"order": fiber.Map{
						"saved":     true,
						"orphaned":  true,
						"orderId":   persistErr.OrderID,
						"orderCode": orderCode,
						"error":     persistErr.Error(),
					},
				})
		}
		return respond(c, fiber.StatusInternalServerError, "Failed to save order", &fiber.Map{
			"handoff": handoffResult,
			"order": fiber.Map{
				"saved":     false,
				"orderCode": orderCode,
				"error":     err.Error(),
			},
		})
	}

	cart.Clear(ctx)

	return respond(c, fiber.StatusOK, "Order sent and saved as pending", &fiber.Map{
		"handoff": handoffResult,
		"order": fiber.Map{
			"saved":  true,
			"record": record,
			"total":  pricing.FormatCurrency(record.Total, h.currency),
		},
	})
}

func (h *Handler) acquire(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inFlight[key] {
		return false
	}
	h.inFlight[key] = true
	return true
}

func (h *Handler) release(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.inFlight, key)
}

func respond(c *fiber.Ctx, status int, message string, result *fiber.Map) error {
	return c.Status(status).JSON(responses.StoreResponse{
		Status:  status,
		Message: message,
		Result:  result,
	})
}
