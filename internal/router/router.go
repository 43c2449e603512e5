package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentora-labs/mentora-api/internal/config"
	"github.com/mentora-labs/mentora-api/internal/handler"
	"github.com/mentora-labs/mentora-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler *handler.AssignmentHandler
	SubmissionHandler *handler.SubmissionHandler
	ModuleHandler     *handler.ModuleHandler
	SelectionHandler  *handler.SelectionHandler
	DashboardHandler  *handler.DashboardHandler
	SeedHandler       *handler.SeedHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AssignmentHandler != nil {
		classroom := app.Group("/api/v1/classroom", jwtMiddleware)

		assignmentGroup := classroom.Group("/assignments")
		deps.AssignmentHandler.Register(assignmentGroup)

		if deps.SubmissionHandler != nil {
			submissionGroup := classroom.Group("/submissions")
			deps.SubmissionHandler.Register(submissionGroup)
		}

		if deps.ModuleHandler != nil {
			moduleGroup := classroom.Group("/modules")
			deps.ModuleHandler.Register(moduleGroup)
		}
	}

	if deps.SelectionHandler != nil {
		view := app.Group("/api/v1/view", jwtMiddleware)
		deps.SelectionHandler.Register(view)
	}

	if deps.DashboardHandler != nil {
		dashboard := app.Group("/api/v1/dashboard", jwtMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.SeedHandler != nil && cfg.SeedEnabled {
		seed := app.Group("/api/v1/seed")
		deps.SeedHandler.Register(seed)
	}
}
