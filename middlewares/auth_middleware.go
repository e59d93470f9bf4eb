package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"haruki-store-api/configs"
	"haruki-store-api/responses"
)

// AdminGate guards the admin panel routes. A request passes only with a valid
// bearer token carrying the admin claim; the operator identity is stored in
// Locals("adminId") for handlers.
func AdminGate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.StoreResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "No auth token, access denied",
		})
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.StoreResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid authorization header format",
		})
	}

	claims := &jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(bearerToken[1], claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.EnvJWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.StoreResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Token verification failed, access denied",
		})
	}

	adminID, ok := (*claims)["id"].(string)
	if !ok || adminID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.StoreResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Admin ID not found in token",
		})
	}
	if isAdmin, ok := (*claims)["admin"].(bool); !ok || !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(responses.StoreResponse{
			Status:  fiber.StatusForbidden,
			Message: "Admin access required",
		})
	}

	c.Locals("adminId", adminID)
	return c.Next()
}
