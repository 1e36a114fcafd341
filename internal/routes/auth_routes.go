package routes

import (
	"github.com/firstroundai/interview-server/internal/handler"
	"github.com/firstroundai/interview-server/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func setupAuthRoutes(api fiber.Router, h *handler.AuthHandler, auth *middleware.AuthMiddleware) {
	group := api.Group("/auth")

	group.Post("/signup", h.Signup)
	group.Post("/login", h.Login)
	group.Get("/me", auth.Authenticate(), h.Me)

	// Public lookup so the signup page can prefill from a pending invitation.
	api.Get("/invitations/:token", h.Invitation)
}
