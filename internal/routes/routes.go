package routes

import (
	"time"

	"github.com/eylulkaya/lostfound/internal/config"
	"github.com/eylulkaya/lostfound/internal/handlers"
	"github.com/eylulkaya/lostfound/internal/middleware"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	itemHandler *handlers.ItemHandler,
	claimHandler *handlers.ClaimHandler,
	staffHandler *handlers.StaffHandler,
	adminHandler *handlers.AdminHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter 10 req/min limiter
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/register", authLimiter, authHandler.Register)
	app.Post("/login", authLimiter, authHandler.Login)
	app.Post("/forgot-password", authLimiter, authHandler.ForgotPassword)
	app.Post("/reset-password/:token", authLimiter, authHandler.ResetPassword)

	// Public listings: only approved reports are visible
	app.Get("/lost-items", itemHandler.ListLost)
	app.Get("/found-items", itemHandler.ListFound)
	app.Get("/found-items/:id", itemHandler.GetFound)
	app.Get("/categories", itemHandler.ListCategories)

	// Authenticated (any role)
	jwt := middleware.JWTProtected(cfg)
	app.Get("/protected", jwt, authHandler.Protected)
	app.Post("/lost-items", jwt, itemHandler.CreateLost)
	app.Post("/found-items", jwt, itemHandler.CreateFound)
	app.Post("/claims", jwt, claimHandler.Submit)
	app.Get("/notifications", jwt, notificationHandler.List)
	app.Put("/notifications/:id/read", jwt, notificationHandler.MarkRead)

	// Staff review surface
	staff := app.Group("/staff", jwt, middleware.RequireRole(models.RoleStaff))
	staff.Get("/pending", staffHandler.ListPending)
	staff.Post("/approve", staffHandler.Approve)
	staff.Post("/reject", staffHandler.Reject)
	staff.Get("/claims/pending", staffHandler.ListPendingClaims)
	staff.Post("/claims/verify", staffHandler.VerifyClaim)
	staff.Post("/claims/reject", staffHandler.RejectClaim)

	// Admin account management
	admin := app.Group("/admin", jwt, middleware.RequireRole(models.RoleAdmin))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/set-role/:id", adminHandler.SetRole)
}
