package handlers

import (
	"github.com/eylulkaya/lostfound/internal/authctx"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/eylulkaya/lostfound/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ClaimHandler struct {
	claimService *services.ClaimService
}

func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

func (h *ClaimHandler) Submit(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	claim, err := h.claimService.Submit(&req, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Claim submitted", "claim": claim})
}
