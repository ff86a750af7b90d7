package routes

import (
	"problem-analytics-service/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all HTTP routes to the Fiber app. Everything under /api/v1 passes
// through the given middleware.
func Register(app *fiber.App, analyticsController controller.AnalyticsController, middleware ...fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", middleware...)
	api.Get("/problem-analytics", analyticsController.GetProblemAnalytics)
	api.Post("/problem-analytics", analyticsController.GetProblemAnalytics)
	api.Get("/problem-timeline", analyticsController.GetProblemTimeline)
	api.Post("/problem-timeline", analyticsController.GetProblemTimeline)
	api.Get("/diagnostics/fetch-failures", analyticsController.GetFetchFailures)
}
