package handler

import (
	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/pkg/response"
	"github.com/firstroundai/interview-server/pkg/tts"

	"github.com/gofiber/fiber/v2"
)

type synthesizeRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type TTSHandler struct {
	ttsClient       *tts.Client
	settingsService domain.SettingsService
}

func NewTTSHandler(ttsClient *tts.Client, settingsService domain.SettingsService) *TTSHandler {
	return &TTSHandler{
		ttsClient:       ttsClient,
		settingsService: settingsService,
	}
}

// Synthesize turns question text into speech. The endpoint is gated on the
// voice provider setting so admins can switch it off without a deploy.
func (h *TTSHandler) Synthesize(c *fiber.Ctx) error {
	provider, err := h.settingsService.VoiceProvider(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}
	if provider != domain.VoiceProviderElevenLabs {
		return response.ServiceUnavailable(c, "voice synthesis is disabled")
	}

	var req synthesizeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	audio, err := h.ttsClient.Synthesize(c.UserContext(), req.Text)
	if err != nil {
		return response.ServiceUnavailable(c, "voice synthesis failed")
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}
