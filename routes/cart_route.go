package routes

import (
	cartController "haruki-store-api/controllers/cart"

	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App, h *cartController.Handler) {
	app.Get("/api/cart", h.GetCart)
	app.Post("/api/cart/add", h.AddItem)
	app.Post("/api/cart/update-quantity", h.UpdateQuantity)
	app.Post("/api/cart/remove", h.RemoveItem)
	app.Post("/api/cart/clear", h.ClearCart)
	app.Post("/api/cart/wishlist", h.ToggleWishlist)
	app.Post("/api/cart/promo", h.SetPromo)
	app.Post("/api/cart/shipping", h.SetShipping)
}
