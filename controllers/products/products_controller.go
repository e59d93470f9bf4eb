package productsController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"haruki-store-api/models"
	"haruki-store-api/repositories"
	"haruki-store-api/responses"
)

// Handler serves catalog reads. The catalog is an external collaborator from
// the cart/order core's perspective; an unreachable store degrades to an
// empty result set instead of failing the page.
type Handler struct {
	catalog *repositories.CatalogRepository
	logger  *zap.Logger
}

func NewHandler(catalog *repositories.CatalogRepository, logger *zap.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

func (h *Handler) ListProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		h.logger.Warn("catalog unavailable, returning empty product list", zap.Error(err))
		products = []models.Product{}
	}

	return c.Status(fiber.StatusOK).JSON(responses.StoreResponse{
		Status:  fiber.StatusOK,
		Message: "Products fetched successfully",
		Result: &fiber.Map{
			"products": products,
		},
	})
}
