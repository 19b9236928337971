package handlers

import (
	"log/slog"

	"github.com/eylulkaya/lostfound/internal/apperr"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/gofiber/fiber/v2"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:        fiber.StatusBadRequest,
	apperr.KindUnauthenticated:   fiber.StatusUnauthorized,
	apperr.KindForbidden:         fiber.StatusForbidden,
	apperr.KindNotFound:          fiber.StatusNotFound,
	apperr.KindConflict:          fiber.StatusConflict,
	apperr.KindInvalidState:      fiber.StatusConflict,
	apperr.KindDependencyFailure: fiber.StatusInternalServerError,
	apperr.KindInternal:          fiber.StatusInternalServerError,
}

// fail renders a service error as the uniform JSON envelope. Unexpected errors
// are logged and masked as a generic 500.
func fail(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	status := kindStatus[kind]
	message := err.Error()
	if kind == apperr.KindInternal {
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Success: false,
		Error:   string(kind),
		Message: message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Success: false,
		Error:   string(apperr.KindValidation),
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Success: false,
		Error:   string(apperr.KindUnauthenticated),
		Message: "Unauthorized",
	})
}
