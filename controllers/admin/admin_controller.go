package adminController

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"haruki-store-api/configs"
	"haruki-store-api/models"
	"haruki-store-api/orders"
	"haruki-store-api/repositories"
	"haruki-store-api/responses"
)

var validate = validator.New()

// Handler serves the admin panel: the session gate and the order dashboard
// with its manual order builder.
type Handler struct {
	composer *orders.Composer
	catalog  *repositories.CatalogRepository
	orders   *repositories.OrderRepository
	admins   *repositories.AdminRepository
	currency string
	logger   *zap.Logger
}

func NewHandler(
	composer *orders.Composer,
	catalog *repositories.CatalogRepository,
	orderRepo *repositories.OrderRepository,
	admins *repositories.AdminRepository,
	currency string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		composer: composer,
		catalog:  catalog,
		orders:   orderRepo,
		admins:   admins,
		currency: currency,
		logger:   logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks operator credentials and issues a token with the admin claim.
func (h *Handler) Login(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := validate.Struct(req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Email and password are required", nil)
	}

	admin, err := h.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return respond(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
		}
		h.logger.Error("admin lookup failed", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Login is temporarily unavailable", nil)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		return respond(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    admin.ID.Hex(),
		"admin": true,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(configs.EnvJWTSecret()))
	if err != nil {
		h.logger.Error("signing admin token failed", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Login is temporarily unavailable", nil)
	}

	return respond(c, fiber.StatusOK, "Login successful", &fiber.Map{
		"token": signed,
		"admin": fiber.Map{"id": admin.ID.Hex(), "name": admin.Name, "email": admin.Email},
	})
}

// CreateOrder is the manual order builder: operator-entered selections are
// priced against the catalog, validated before any side effect, and persisted
// through the same two-phase submit as the customer checkout.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var input orders.ManualOrderInput
	if err := c.BodyParser(&input); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if input.Currency == "" {
		input.Currency = h.currency
	}

	draft, err := orders.BuildManualOrder(ctx, h.catalog, input)
	if err != nil {
		var validationErr *orders.ValidationError
		if errors.As(err, &validationErr) {
			return respond(c, fiber.StatusBadRequest, validationErr.Reason, nil)
		}
		h.logger.Error("building manual order failed", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Order could not be built", nil)
	}

	record, err := h.composer.Submit(ctx, draft)
	if err != nil {
		var persistErr *orders.PersistenceFailure
		if errors.As(err, &persistErr) && persistErr.Orphaned() {
			return respond(c, fiber.StatusInternalServerError,
				"Order was saved without its items and needs attention", &fiber.Map{
					"orderId":   persistErr.OrderID,
					"orderCode": persistErr.OrderCode,
					"orphaned":  true,
				})
		}
		var validationErr *orders.ValidationError
		if errors.As(err, &validationErr) {
			return respond(c, fiber.StatusBadRequest, validationErr.Reason, nil)
		}
		h.logger.Error("saving manual order failed", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Failed to save order", nil)
	}

	return respond(c, fiber.StatusOK, "Order created successfully", &fiber.Map{
		"order": record,
	})
}

// ListOrders returns every order, optionally filtered by the status and
// search query parameters.
func (h *Handler) ListOrders(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return respond(c, fiber.StatusBadRequest, "Unknown status filter", nil)
	}

	list, err := h.orders.FindOrders(ctx, status, c.Query("search"))
	if err != nil {
		h.logger.Warn("order store unavailable, returning empty order list", zap.Error(err))
		list = []models.OrderRecord{}
	}

	return respond(c, fiber.StatusOK, "Orders fetched successfully", &fiber.Map{
		"orders": list,
	})
}

// OrderItems returns the line rows of one order.
func (h *Handler) OrderItems(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	orderID, ok := orderIDFromQuery(c)
	if !ok {
		return respond(c, fiber.StatusBadRequest, "Valid order id is required", nil)
	}

	items, err := h.orders.FindOrderItems(ctx, orderID)
	if err != nil {
		h.logger.Error("fetching order items failed", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Failed to fetch order items", nil)
	}

	return respond(c, fiber.StatusOK, "Order items fetched successfully", &fiber.Map{
		"items": items,
	})
}

type UpdateStatusRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

// UpdateStatus applies an operator status transition. Any status may move to
// any other; only unknown status values are rejected.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := validate.Struct(req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Order id and status are required", nil)
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid order id format", nil)
	}

	if err := h.composer.SetStatus(ctx, orderID, models.OrderStatus(req.Status)); err != nil {
		var validationErr *orders.ValidationError
		if errors.As(err, &validationErr) {
			return respond(c, fiber.StatusBadRequest, validationErr.Reason, nil)
		}
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return respond(c, fiber.StatusNotFound, "Order not found", nil)
		}
		h.logger.Error("updating order status failed", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Failed to update order status", nil)
	}

	return respond(c, fiber.StatusOK, "Order status updated", &fiber.Map{
		"orderId": req.OrderID,
		"status":  req.Status,
	})
}

// DeleteOrder removes an order and its items.
func (h *Handler) DeleteOrder(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	orderID, ok := orderIDFromQuery(c)
	if !ok {
		return respond(c, fiber.StatusBadRequest, "Valid order id is required", nil)
	}

	if err := h.orders.DeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return respond(c, fiber.StatusNotFound, "Order not found", nil)
		}
		h.logger.Error("deleting order failed", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Failed to delete order", nil)
	}

	return respond(c, fiber.StatusOK, "Order deleted", nil)
}

func orderIDFromQuery(c *fiber.Ctx) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Query("id"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func respond(c *fiber.Ctx, status int, message string, result *fiber.Map) error {
	return c.Status(status).JSON(responses.StoreResponse{
		Status:  status,
		Message: message,
		Result:  result,
	})
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 10*time.Second)
}
