package routes

import (
	"github.com/firstroundai/interview-server/internal/handler"
	"github.com/firstroundai/interview-server/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Interview *handler.InterviewHandler
	Admin     *handler.AdminHandler
	TTS       *handler.TTSHandler
}

type Middlewares struct {
	Auth *middleware.AuthMiddleware
}

func Setup(app *fiber.App, handlers Handlers, middlewares Middlewares) {
	app.Get("/health", healthCheck)

	api := app.Group("/api/v1")

	setupAuthRoutes(api, handlers.Auth, middlewares.Auth)
	setupInterviewRoutes(api, handlers.Interview, handlers.TTS)
	setupAdminRoutes(api, handlers.Admin, middlewares.Auth)
}

func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "server is running",
	})
}
