package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/internal/api/http/handlers"
	"github.com/spec-kit/training-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Sessions       *handlers.SessionsHandler
	Departments    *handlers.DepartmentsHandler
	Companies      *handlers.CompaniesHandler
	Topics         *handlers.TopicsHandler
	Activities     *handlers.ActivitiesHandler
	Branding       *handlers.BrandingHandler
	Invites        *handlers.InvitesHandler
	Info           *handlers.InfoHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/accept-invite", cfg.Invites.Accept)
	app.Get("/faq", cfg.Info.FAQ)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	protected.Post("/logout", cfg.Auth.Logout)
	protected.Post("/change-password", cfg.Auth.ChangePassword)
	protected.Get("/me", cfg.Users.Me)
	protected.Put("/me", cfg.Users.UpdateSelf)

	protected.Get("/dashboard", cfg.Sessions.Dashboard)

	protected.Get("/users", cfg.Users.List)
	protected.Post("/users", cfg.Users.Create)
	protected.Get("/users/:id", cfg.Users.Get)
	protected.Put("/users/:id", cfg.Users.Update)
	protected.Delete("/users/:id", cfg.Users.Delete)

	protected.Get("/sessions", cfg.Sessions.List)
	protected.Post("/sessions", cfg.Sessions.Create)
	protected.Get("/sessions/:id", cfg.Sessions.Get)
	protected.Put("/sessions/:id", cfg.Sessions.Update)
	protected.Delete("/sessions/:id", cfg.Sessions.Delete)

	protected.Get("/departments", cfg.Departments.List)
	protected.Post("/departments", cfg.Departments.Create)
	protected.Put("/departments/:id", cfg.Departments.Update)
	protected.Delete("/departments/:id", cfg.Departments.Delete)

	protected.Get("/companies", cfg.Companies.List)
	protected.Get("/companies/:id", cfg.Companies.Get)
	protected.Put("/companies/:id", cfg.Companies.Update)

	protected.Get("/topics", cfg.Topics.List)
	protected.Post("/topics", cfg.Topics.Create)
	protected.Put("/topics/:id", cfg.Topics.Update)
	protected.Delete("/topics/:id", cfg.Topics.Delete)

	protected.Get("/recent-activities", cfg.Activities.List)
	protected.Get("/notifications/count", cfg.Activities.UnreadCount)

	protected.Get("/company-profile", cfg.Branding.GetProfile)
	protected.Get("/setup-checklist", cfg.Branding.Checklist)
	protected.Post("/support", cfg.Info.Support)

	protected.Get("/export-sessions", cfg.Reports.ExportXLSX)
	protected.Get("/export-sessions-pdf", cfg.Reports.ExportPDF)
	protected.Post("/import-sessions", cfg.Reports.ImportXLSX)

	admin := protected.Group("", auth.RequireSuperAdmin())
	admin.Post("/companies", cfg.Companies.Create)
	admin.Delete("/companies/:id", cfg.Companies.Delete)
	admin.Post("/invite-admin", cfg.Invites.Invite)
	admin.Put("/company-profile", cfg.Branding.SaveProfile)
	admin.Put("/company-profile/logo", cfg.Branding.UploadLogo)
	admin.Put("/setup-checklist/:id", cfg.Branding.ToggleChecklist)
}
