package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/salestrain-api/internal/config"
	"github.com/noah-isme/salestrain-api/internal/handler"
	"github.com/noah-isme/salestrain-api/internal/middleware"
	"github.com/noah-isme/salestrain-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	EvaluationHandler *handler.EvaluationHandler
	ScenarioHandler   *handler.ScenarioHandler
	KnowledgeHandler  *handler.KnowledgeHandler
	AppealHandler     *handler.AppealHandler
	DialogueHandler   *handler.DialogueHandler
	TaskHandler       *handler.TaskHandler
	EventsHandler     *handler.EventsHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.EvaluationHandler != nil {
		evaluations := api.Group("/evaluations", middleware.RateLimit("evaluations", cfg.EvaluationRateLimit, cfg.RateLimitWindow))
		deps.EvaluationHandler.Register(evaluations)
	}

	if deps.ScenarioHandler != nil {
		deps.ScenarioHandler.Register(api.Group("/scenarios"))
	}

	if deps.KnowledgeHandler != nil {
		deps.KnowledgeHandler.Register(api.Group("/knowledge"))
	}

	if deps.AppealHandler != nil {
		deps.AppealHandler.Register(api.Group("/appeals"))
	}

	if deps.DialogueHandler != nil {
		deps.DialogueHandler.Register(api.Group("/dialogues"))
	}

	if deps.TaskHandler != nil {
		deps.TaskHandler.Register(api.Group("/tasks"))
	}

	if deps.EventsHandler != nil {
		deps.EventsHandler.Register(api.Group("/events"))
	}
}
