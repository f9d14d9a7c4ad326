package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Grievance *handlers.GrievanceHandler
	Analytics *handlers.AnalyticsHandler
	Batch     *handlers.BatchHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/ai/status", h.Health.ClassifierStatus)

	// Public submission form
	api.Post("/grievances", h.Grievance.Submit)
	api.Post("/grievances/analyze", h.Grievance.SubmitAndAnalyze)

	// Admin login: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.Login)

	// Dashboard
	admin := api.Group("/admin", middleware.AdminRequired(cfg))
	admin.Get("/analytics", h.Analytics.Get)
	admin.Get("/batches", h.Analytics.ListBatches)
	admin.Get("/batches/latest", h.Analytics.LatestBatch)
	admin.Get("/grievances", h.Grievance.List)
	admin.Post("/grievances/csv", h.Batch.UploadCSV)
	admin.Get("/grievances/:id", h.Grievance.Get)
	admin.Post("/grievances/:id/analyze", h.Grievance.Analyze)
}
