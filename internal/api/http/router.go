package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Resources      *handlers.ResourcesHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every business route passes the identity
// guard first; write routes add a role guard on top.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/password/change", cfg.Auth.ChangePassword)

	protected.Get("/resources", cfg.Resources.List)
	protected.Post("/resources",
		auth.RequireRole(domain.RoleManager, domain.RoleSecurityAdmin),
		cfg.Resources.Create)
	protected.Put("/resources/:id",
		auth.RequireRole(domain.RoleManager, domain.RoleSecurityAdmin),
		cfg.Resources.Update)
	protected.Delete("/resources/:id",
		auth.RequireRole(domain.RoleSecurityAdmin),
		cfg.Resources.Delete)

	protected.Get("/dashboard", cfg.Dashboard.Get)
}
