package middleware

import (
	"github.com/eylulkaya/lostfound/internal/authctx"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// RequireRole rejects requests whose token role is not exactly the given role.
// There is no hierarchy: admin does not satisfy a staff requirement.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := authctx.Role(c)
		if current == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Error:   "unauthenticated",
				Message: "Unauthorized",
			})
		}
		if current != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false,
				Error:   "forbidden",
				Message: "Access requires " + role + " role",
			})
		}
		return c.Next()
	}
}
