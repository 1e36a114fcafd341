package routes

import (
	"github.com/firstroundai/interview-server/internal/handler"

	"github.com/gofiber/fiber/v2"
)

// Interview routes are public: candidates arrive through an invitation link
// and identify themselves by email when starting.
func setupInterviewRoutes(api fiber.Router, h *handler.InterviewHandler, tts *handler.TTSHandler) {
	group := api.Group("/interviews")

	group.Post("/", h.Start)
	group.Post("/answers", h.SubmitAnswer)
	group.Get("/:id", h.GetByID)
	group.Get("/:id/report", h.DownloadReport)

	api.Get("/candidates/:candidateId/results", h.ResultsByCandidate)
	api.Post("/tts", tts.Synthesize)
}
