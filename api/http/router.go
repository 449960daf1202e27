package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freetrust/backend/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, jobs *handlers.JobHandler, health *handlers.HealthHandler) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	api.Post("/signup", auth.Signup)
	api.Post("/login", auth.Login)
	api.Post("/forgot-password", auth.ForgotPassword)
	api.Post("/reset-password", auth.ResetPassword)

	api.Get("/jobs", jobs.List)
	api.Get("/jobs/:id", jobs.GetByID)
	api.Post("/jobs", jobs.Create)
	api.Put("/jobs/:id", jobs.Update)
	api.Delete("/jobs/:id", jobs.Delete)
}
