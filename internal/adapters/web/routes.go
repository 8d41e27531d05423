package web

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	// Tweet lookup by id, e.g. /analyze/1234567890123456789.
	// The id is optional so an empty one reaches the validator.
	app.Post("/analyze/:id?", handlers.AnalyzeTweet)

	// Free-text sentiment
	app.Post("/google/analyze", handlers.AnalyzeSentiment)

	app.Get("/healthz", handlers.Health)
}
