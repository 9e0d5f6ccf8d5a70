package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/vignette-service/internal/api/http/handlers"
	"github.com/spec-kit/vignette-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Vehicles       *handlers.VehiclesHandler
	Stickers       *handlers.StickersHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Verification stays public; everything
// else under /api requires a principal, with citizen/staff separation done
// here and per-action policy decisions inside the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/admin/login", cfg.Auth.StaffLogin)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api.Get("/verify/:registration_number", cfg.Stickers.Verify)

	vehicles := api.Group("/vehicles", cfg.AuthMiddleware.Handle, auth.RequireCitizen())
	vehicles.Post("/", cfg.Vehicles.Register)
	vehicles.Get("/", cfg.Vehicles.List)
	vehicles.Get("/:id", cfg.Vehicles.Get)

	stickers := api.Group("/stickers", cfg.AuthMiddleware.Handle, auth.RequireCitizen())
	stickers.Post("/purchase", cfg.Stickers.Purchase)
	stickers.Get("/", cfg.Stickers.List)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	admin.Post("/users", cfg.Admin.CreateStaff)
	admin.Get("/users", cfg.Admin.ListStaff)
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/vehicles", cfg.Admin.ListVehicles)
	admin.Get("/stickers", cfg.Admin.ListStickers)
	admin.Get("/reports/payments", cfg.Admin.PaymentReports)
	admin.Get("/audit-logs", cfg.Admin.AuditLogs)
	admin.Get("/tax-configs", cfg.Admin.TaxConfigs)

	inspections := api.Group("/inspections", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	inspections.Post("/", cfg.Admin.CreateInspection)
	inspections.Get("/", cfg.Admin.ListInspections)
}
