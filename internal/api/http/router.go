package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesklabs/helpdesk-api/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Users     *handlers.UsersHandler
	Tickets   *handlers.TicketsHandler
	Dashboard *handlers.DashboardHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Get("/users", cfg.Users.ListUsers)
	app.Post("/users", cfg.Users.CreateUser)
	app.Get("/users/:id", cfg.Users.GetUser)
	app.Patch("/users/:id", cfg.Users.UpdateUser)
	app.Delete("/users/:id", cfg.Users.DeleteUser)

	app.Get("/tickets", cfg.Tickets.ListTickets)
	app.Post("/tickets", cfg.Tickets.CreateTicket)
	app.Get("/tickets/:id", cfg.Tickets.GetTicket)
	app.Patch("/tickets/:id", cfg.Tickets.UpdateTicket)
	app.Delete("/tickets/:id", cfg.Tickets.DeleteTicket)

	app.Get("/dashboard", cfg.Dashboard.GetDashboard)
}
