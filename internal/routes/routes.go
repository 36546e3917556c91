package routes

import (
	"technest_backend/internal/handlers"
	"technest_backend/internal/middleware"
	"technest_backend/internal/models"
	"technest_backend/internal/session"
	"technest_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes lays the API out under /api/v1. Guards:
//   - public: directory, job listing, auth endpoints, admin login;
//   - authenticated: profile, matching, chat, notifications;
//   - role-gated: job posting (company), job feed (individual);
//   - admin cookie: the console.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, wsHandler *ws.Handler, sessions *session.Manager) {
	api := r.Group("/api/v1")

	h.Auth.RegisterRoutes(api.Group("/auth"))
	h.Directory.RegisterRoutes(api.Group("/directory"))
	h.Jobs.RegisterPublicRoutes(api.Group("/jobs"))
	h.Admin.RegisterPublicRoutes(api.Group("/admin"))

	authed := api.Group("", middleware.RequireAuth())
	h.Profile.RegisterRoutes(authed.Group("/profile"))
	h.Matching.RegisterRoutes(authed.Group("/matches"))
	h.Chat.RegisterRoutes(authed.Group("/chat"))
	h.Notifications.RegisterRoutes(authed.Group("/notifications"))

	company := api.Group("/jobs", middleware.RequireRole(models.RoleCompany))
	h.Jobs.RegisterCompanyRoutes(company)

	individual := api.Group("/jobs", middleware.RequireRole(models.RoleIndividual))
	h.Jobs.RegisterMemberRoutes(individual)

	admin := api.Group("/admin", middleware.RequireAdmin(sessions))
	h.Admin.RegisterRoutes(admin)

	// Websocket endpoint authenticates inside the handler; the upgrade
	// request cannot go through the JSON error guards.
	wsHandler.RegisterRoutes(r.Group("/ws"))
}
