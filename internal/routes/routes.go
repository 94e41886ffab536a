package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Routines  *handlers.RoutineHandler
	Steps     *handlers.StepHandler
	Tags      *handlers.TagHandler
	Languages *handlers.LanguageHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers, roles middleware.RoleLookup) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	protected := middleware.JWTProtected(cfg)
	adminOnly := middleware.AdminRequired(roles)
	// Ownership checks use store roles, not the roles baked into the token
	caller := middleware.ResolveCaller(roles)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.Login)
	auth.Post("/verify-email", h.Auth.VerifyEmail)
	auth.Post("/request-password-reset", h.Auth.RequestPasswordReset)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Post("/register", protected, adminOnly, h.Auth.Register)
	auth.Get("/me", protected, h.Auth.Me)

	routines := api.Group("/routines", protected, caller)
	routines.Get("/", h.Routines.List)
	routines.Post("/", h.Routines.Create)
	routines.Get("/:id", h.Routines.Get)
	routines.Put("/:id", h.Routines.Update)
	routines.Delete("/:id", h.Routines.Delete)

	routines.Get("/:id/steps", h.Steps.List)
	routines.Post("/:id/steps", h.Steps.Create)
	routines.Put("/:id/steps/:stepId", h.Steps.Update)
	routines.Delete("/:id/steps/:stepId", h.Steps.Delete)

	routines.Post("/:id/tags/:tagId", h.Tags.Attach)
	routines.Delete("/:id/tags/:tagId", h.Tags.Detach)

	steps := api.Group("/steps", protected, caller)
	steps.Get("/:stepId/translations", h.Steps.ListTranslations)
	steps.Post("/:stepId/translations", h.Steps.CreateTranslation)

	translations := api.Group("/translations", protected, caller)
	translations.Put("/:id", h.Steps.UpdateTranslation)
	translations.Delete("/:id", h.Steps.DeleteTranslation)

	// Catalog reads are open to any session; changes are admin only
	tags := api.Group("/tags", protected, caller)
	tags.Get("/", h.Tags.List)
	tags.Get("/:id", h.Tags.Get)
	tags.Post("/", adminOnly, h.Tags.Create)
	tags.Put("/:id", adminOnly, h.Tags.Update)
	tags.Delete("/:id", adminOnly, h.Tags.Delete)

	languages := api.Group("/languages", protected)
	languages.Get("/", h.Languages.List)
	languages.Get("/:code", h.Languages.Get)
	languages.Post("/", adminOnly, h.Languages.Create)
}
