package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/promptclass-api/internal/config"
	"github.com/noah-isme/promptclass-api/internal/handler"
	"github.com/noah-isme/promptclass-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ClassHandler      *handler.ClassHandler
	AssignmentHandler *handler.AssignmentHandler
	SubmissionHandler *handler.SubmissionHandler
	VoteHandler       *handler.VoteHandler
	PromptHandler     *handler.PromptHandler
	HealthHandler     *handler.HealthHandler
	LiveHandler       *handler.LiveHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.HealthHandler != nil {
		deps.HealthHandler.Register(api)
	}
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(api)
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api)
	}
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api)
	}
	if deps.VoteHandler != nil {
		deps.VoteHandler.Register(api)
	}
	if deps.PromptHandler != nil {
		deps.PromptHandler.Register(api)
	}
	if deps.LiveHandler != nil {
		deps.LiveHandler.Register(api)
	}

	app.Get("/metrics", observability.MetricsHandler())

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
}
