package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casaflow/community-service/internal/api/http/handlers"
	"github.com/casaflow/community-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Residents      *handlers.ResidentsHandler
	Requests       *handlers.RequestsHandler
	WorkItems      *handlers.WorkItemsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Residents.Register)
	authGroup.Post("/login", cfg.Residents.Login)

	// The voice webhook authenticates with the session key in its body, not
	// a bearer token.
	app.Post("/voice/report", cfg.Requests.SubmitVoiceReport)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireResident())
	protected.Post("/voice/sessions", cfg.Residents.CreateVoiceSession)
	protected.Post("/requests", cfg.Requests.SubmitRequest)
	protected.Get("/work-items", cfg.WorkItems.List)
	protected.Get("/work-items/:id", cfg.WorkItems.Get)

	owner := protected.Group("", auth.RequireOwner())
	owner.Post("/work-items/:id/approve", cfg.WorkItems.Approve)
}
