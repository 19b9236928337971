package handlers

import (
	"github.com/eylulkaya/lostfound/internal/authctx"
	"github.com/eylulkaya/lostfound/internal/dto"
	"github.com/eylulkaya/lostfound/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(dto.RegisterResponse{Success: true, User: *user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, user, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(dto.LoginResponse{Success: true, Token: token, User: *user})
}

// Protected returns the profile of the authenticated caller.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.authService.Profile(userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return badRequest(c, "email is required")
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password reset email sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.ResetPassword(token, req.Password); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password has been reset"})
}
