package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/roombook/backend/internal/service"
	"github.com/roombook/backend/internal/validate"
)

// Every response uses the envelope {status: "success"|"error", ...}.

func success(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": message,
	})
}

func successData(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

func fail(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

func failFields(c fiber.Ctx, fe validate.FieldErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status": "error",
		"errors": fe,
	})
}

func failBind(c fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "Invalid request body")
}

// failServiceErr maps a service error onto the wire. Internal faults are
// logged server-side and surface only their caller-safe message.
func failServiceErr(c fiber.Ctx, err error) error {
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		return failFields(c, fe)
	}

	var internal *service.InternalError
	if errors.As(err, &internal) {
		slog.Error("internal fault", "request_id", c.Locals("request_id"), "error", internal.Err)
		return fail(c, fiber.StatusInternalServerError, internal.Message)
	}

	slog.Error("unexpected error", "request_id", c.Locals("request_id"), "error", err)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}
