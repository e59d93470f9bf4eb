package routes

import (
	productsController "haruki-store-api/controllers/products"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoute(app *fiber.App, h *productsController.Handler) {
	app.Get("/api/products", h.ListProducts)
}
