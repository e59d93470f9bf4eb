package routes

import (
	orderController "haruki-store-api/controllers/orders"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App, h *orderController.Handler) {
	app.Post("/api/checkout", h.Checkout)
}
