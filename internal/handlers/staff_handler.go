package handlers

import (
	"github.com/eylulkaya/lostfound/internal/authctx"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/eylulkaya/lostfound/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StaffHandler serves the review surface: pending reports, approval decisions,
// and claim verification.
type StaffHandler struct {
	itemService  *services.ItemService
	claimService *services.ClaimService
}

func NewStaffHandler(itemService *services.ItemService, claimService *services.ClaimService) *StaffHandler {
	return &StaffHandler{itemService: itemService, claimService: claimService}
}

func (h *StaffHandler) ListPending(c *fiber.Ctx) error {
	lost, found, err := h.itemService.ListPending()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "lost": lost, "found": found})
}

func (h *StaffHandler) Approve(c *fiber.Ctx) error {
	reviewer, err := authctx.Current(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	if err := h.itemService.Approve(itemID, req.Type, reviewer); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Item approved"})
}

func (h *StaffHandler) Reject(c *fiber.Ctx) error {
	reviewer, err := authctx.Current(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	if err := h.itemService.Reject(itemID, req.Type, req.Reason, reviewer); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Item rejected"})
}

func (h *StaffHandler) ListPendingClaims(c *fiber.Ctx) error {
	claims, err := h.claimService.ListPending()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "claims": claims})
}

func (h *StaffHandler) VerifyClaim(c *fiber.Ctx) error {
	reviewer, err := authctx.Current(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ClaimActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	if err := h.claimService.Verify(itemID, reviewer); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Claim verified"})
}

func (h *StaffHandler) RejectClaim(c *fiber.Ctx) error {
	reviewer, err := authctx.Current(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ClaimActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	if err := h.claimService.Reject(itemID, req.Reason, reviewer); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Claim rejected"})
}
