package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/ozanyldz/stagepass/internal/config"
	"github.com/ozanyldz/stagepass/internal/handlers"
	"github.com/ozanyldz/stagepass/internal/middleware"
	"github.com/ozanyldz/stagepass/internal/models"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	ticketHandler *handlers.TicketHandler,
	formHandler *handlers.FormHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify", authHandler.Verify)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-login-otp", authHandler.VerifyLoginOTP)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	// KYC upload identifies the organizer by form field, not by session.
	auth.Post("/organizer/kyc", authHandler.UploadKYC)

	// Events (organizer-only)
	events := api.Group("/events",
		middleware.JWTProtected(cfg),
		middleware.ActiveUser(db),
		middleware.RequireRoles(db, models.RoleOrganizer),
	)
	events.Post("/create", eventHandler.Create)
	events.Put("/:eventId/edit", eventHandler.Update)
	events.Patch("/:id/status", eventHandler.Delete)
	events.Post("/:eventId/tickets", ticketHandler.Create)
	events.Put("/:eventId/tickets/:ticketId", ticketHandler.Update)
	events.Delete("/:eventId/tickets/:ticketId", ticketHandler.Delete)

	// Custom forms (organizer-only)
	formsGroup := api.Group("/forms",
		middleware.JWTProtected(cfg),
		middleware.ActiveUser(db),
		middleware.RequireRoles(db, models.RoleOrganizer),
	)
	formsGroup.Post("/", formHandler.Create)
	formsGroup.Put("/:formId", formHandler.Update)
	formsGroup.Delete("/:formId", formHandler.Delete)
}
