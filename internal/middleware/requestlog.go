package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// RequestLogger logs every request with a correlation id. The id is echoed
// back in the X-Request-ID header so clients can quote it in bug reports.
func RequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()

		// Capture request data BEFORE handler execution (Fiber reuses
		// context objects).
		method := c.Method()
		path := c.Path()
		ip := c.IP()

		c.Locals("request_id", requestID)
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		userID := int64(0)
		if u := AuthUser(c); u != nil {
			userID = u.ID
		}

		slog.Info("request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", ip,
			"user_id", userID,
		)

		return err
	}
}
