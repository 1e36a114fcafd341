package routes

import (
	"github.com/firstroundai/interview-server/internal/handler"
	"github.com/firstroundai/interview-server/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func setupAdminRoutes(api fiber.Router, h *handler.AdminHandler, auth *middleware.AuthMiddleware) {
	group := api.Group("/admin", auth.Authenticate(), middleware.RequireAdmin())

	group.Get("/stats", h.Stats)
	group.Get("/interviews", h.ListInterviews)
	group.Delete("/interviews/:id", h.DeleteInterview)
	group.Get("/candidates", h.ListCandidates)
	group.Delete("/candidates/:id", h.DeleteCandidate)
	group.Patch("/candidates/:id/disqualify", h.DisqualifyCandidate)
	group.Get("/users", h.ListUsers)
	group.Get("/admins", h.ListAdmins)
	group.Post("/admins", h.AddAdmin)
	group.Delete("/admins/:email", h.RemoveAdmin)
	group.Get("/export", h.Export)
	group.Get("/audit-logs", h.AuditLogs)
	group.Get("/token-usage", h.TokenUsage)
	group.Post("/invitations", h.SendInvitation)
	group.Get("/settings", h.GetSettings)
	group.Put("/settings/ai-provider", h.SetAIProvider)
	group.Put("/settings/voice-provider", h.SetVoiceProvider)
}
