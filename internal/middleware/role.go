package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/roombook/backend/internal/domain"
)

// RequireAdmin creates a Fiber middleware that allows only users with the
// ADMIN role through. It must run after RequireAuth; a missing identity is
// rejected rather than assumed.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		user := AuthUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Unauthorized",
			})
		}

		if user.Role != domain.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Admin access required",
			})
		}

		return c.Next()
	}
}
