package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hubex/account-service/internal/api/http/handlers"
	"github.com/hubex/account-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Credentials    *handlers.CredentialsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/auth/login", cfg.Accounts.Login)

	accounts := app.Group("/accounts")
	accounts.Post("", cfg.Accounts.Register)
	accounts.Get("/email-verification", cfg.Credentials.VerifyEmail)
	accounts.Post("/password-reset-request", cfg.Credentials.RequestPasswordReset)
	accounts.Post("/password-reset", cfg.Credentials.ResetPassword)

	protected := accounts.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("", cfg.Accounts.List)
	protected.Get("/:id", cfg.Accounts.Get)
	protected.Put("/:id", cfg.Accounts.Rename)
	protected.Delete("/:id", cfg.Accounts.Delete)
}
