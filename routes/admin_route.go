package routes

import (
	adminController "haruki-store-api/controllers/admin"
	"haruki-store-api/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, h *adminController.Handler) {
	app.Post("/api/admin/login", h.Login)

	app.Post("/api/admin/orders", middlewares.AdminGate, h.CreateOrder)
	app.Get("/api/admin/orders", middlewares.AdminGate, h.ListOrders)
	app.Get("/api/admin/orders/items", middlewares.AdminGate, h.OrderItems)
	app.Put("/api/admin/orders/status", middlewares.AdminGate, h.UpdateStatus)
	app.Delete("/api/admin/orders", middlewares.AdminGate, h.DeleteOrder)
}
