package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/agent-tasks/modules/accounts"
)

// UserContextKey is the fiber locals key the authenticated claims live under.
const UserContextKey = "user"

// AuthMiddleware validates the Authorization bearer token through the
// accounts module and stores the resulting claims in the request locals.
func AuthMiddleware(port accounts.AccountsPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "Access denied. No token provided.",
			})
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "Access denied. Invalid token format.",
			})
		}

		claims, err := port.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "Invalid or expired token.",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}
