package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"haruki-store-api/configs"
	adminController "haruki-store-api/controllers/admin"
	cartController "haruki-store-api/controllers/cart"
	orderController "haruki-store-api/controllers/orders"
	productsController "haruki-store-api/controllers/products"
	"haruki-store-api/orders"
	"haruki-store-api/repositories"
	"haruki-store-api/routes"
	"haruki-store-api/store"
)

func main() {
	logger, err := configs.NewLogger()
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	client, err := configs.ConnectDB(configs.EnvMongoURI())
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}

	dbName := configs.EnvMongoDBName()
	cartRepo := repositories.NewCartRepository(configs.GetCollection(client, dbName, "carts"), logger)
	orderRepo := repositories.NewOrderRepository(
		configs.GetCollection(client, dbName, "orders"),
		configs.GetCollection(client, dbName, "order_items"),
		logger,
	)
	catalogRepo := repositories.NewCatalogRepository(configs.GetCollection(client, dbName, "products"), logger)
	adminRepo := repositories.NewAdminRepository(configs.GetCollection(client, dbName, "admins"), logger)

	carts := store.NewManager(cartRepo, logger)
	composer := orders.NewComposer(orderRepo, logger)
	currency := configs.EnvStoreCurrency()

	app := fiber.New()
	app.Use(recover.New())
	routes.CartRoutes(app, cartController.NewHandler(carts, currency, logger))
	routes.OrderRoutes(app, orderController.NewHandler(carts, composer, configs.EnvWhatsAppNumber(), currency, logger))
	routes.ProductsRoute(app, productsController.NewHandler(catalogRepo, logger))
	routes.AdminRoutes(app, adminController.NewHandler(composer, catalogRepo, orderRepo, adminRepo, currency, logger))

	logger.Info("listening", zap.String("addr", configs.EnvPort()))
	if err := app.Listen(configs.EnvPort()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
