package handlers

import (
	"github.com/eylulkaya/lostfound/internal/authctx"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/eylulkaya/lostfound/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ItemHandler struct {
	itemService *services.ItemService
}

func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) CreateLost(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateLostItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.itemService.CreateLost(&req, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "item": item})
}

func (h *ItemHandler) CreateFound(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateFoundItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.itemService.CreateFound(&req, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "item": item})
}

func (h *ItemHandler) ListLost(c *fiber.Ctx) error {
	items, err := h.itemService.ListApprovedLost()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "items": items})
}

func (h *ItemHandler) ListFound(c *fiber.Ctx) error {
	items, err := h.itemService.ListApprovedFound()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "items": items})
}

func (h *ItemHandler) GetFound(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	item, err := h.itemService.GetFound(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "item": item})
}

func (h *ItemHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.itemService.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "categories": categories})
}
