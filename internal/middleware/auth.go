package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/port"
	"github.com/roombook/backend/internal/security"
)

const bearerPrefix = "Bearer "

// RequireAuth creates a Fiber middleware that resolves the bearer access
// token to a live user identity and injects it into the request, or
// rejects the request. The checks run in a fixed order and each failure is
// terminal:
//
//  1. missing or non-Bearer Authorization header
//  2. empty token after the prefix
//  3. signature/expiry verification failure
//  4. token subject does not resolve to an existing user
//
// A store fault at step 4 is an internal error, not an authentication
// rejection.
func RequireAuth(tokens *security.Authority, users port.UserStore) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Authorization header must be in format: Bearer <token>",
			})
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Token is missing",
			})
		}

		claims, err := tokens.ParseAccess(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid token",
			})
		}

		user, err := users.GetUserByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, port.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status":  "error",
					"message": "user not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "something went wrong",
			})
		}

		c.Locals("user", &domain.AuthenticatedUser{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Role:      user.Role,
		})

		return c.Next()
	}
}

// AuthUser extracts the authenticated user injected by RequireAuth, or nil.
func AuthUser(c fiber.Ctx) *domain.AuthenticatedUser {
	u, ok := c.Locals("user").(*domain.AuthenticatedUser)
	if !ok {
		return nil
	}
	return u
}
