package responses

import "github.com/gofiber/fiber/v2"

// StoreResponse is the uniform envelope every endpoint returns.
type StoreResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Result  *fiber.Map `json:"result,omitempty"`
}
