package handler

import (
	"errors"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/internal/middleware"
	"github.com/firstroundai/interview-server/internal/service"
	"github.com/firstroundai/interview-server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService    domain.AdminService
	settingsService domain.SettingsService
}

func NewAdminHandler(adminService domain.AdminService, settingsService domain.SettingsService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		settingsService: settingsService,
	}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "stats retrieved", stats)
}

func (h *AdminHandler) ListInterviews(c *fiber.Ctx) error {
	interviews, err := h.adminService.ListInterviews(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "interviews retrieved", interviews)
}

func (h *AdminHandler) ListCandidates(c *fiber.Ctx) error {
	candidates, err := h.adminService.ListCandidates(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "candidates retrieved", candidates)
}

func (h *AdminHandler) DeleteInterview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid interview id")
	}

	if err := h.adminService.DeleteInterview(c.UserContext(), id, performedBy(c)); err != nil {
		if errors.Is(err, service.ErrInterviewNotFound) {
			return response.NotFound(c, "interview not found")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "interview deleted", nil)
}

func (h *AdminHandler) DeleteCandidate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid candidate id")
	}

	if err := h.adminService.DeleteCandidate(c.UserContext(), id, performedBy(c)); err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			return response.NotFound(c, "candidate not found")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "candidate deleted", nil)
}

func (h *AdminHandler) DisqualifyCandidate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid candidate id")
	}

	if err := h.adminService.DisqualifyCandidate(c.UserContext(), id, performedBy(c)); err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			return response.NotFound(c, "candidate not found")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "candidate disqualified", nil)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "users retrieved", users)
}

func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.adminService.ListAdmins(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "admins retrieved", admins)
}

func (h *AdminHandler) AddAdmin(c *fiber.Ctx) error {
	var req domain.AddAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.adminService.PromoteAdmin(c.UserContext(), req.Email, performedBy(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return response.NotFound(c, "user not found")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "admin role granted", nil)
}

func (h *AdminHandler) RemoveAdmin(c *fiber.Ctx) error {
	email := c.Params("email")

	if err := h.adminService.DemoteAdmin(c.UserContext(), email, performedBy(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return response.NotFound(c, "user not found")
		}
		if errors.Is(err, service.ErrCannotDemoteSelf) {
			return response.BadRequest(c, "admins cannot remove their own admin role")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "admin role removed", nil)
}

func (h *AdminHandler) Export(c *fiber.Ctx) error {
	bundle, err := h.adminService.Export(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="interview-export.json"`)
	return c.JSON(bundle)
}

func (h *AdminHandler) AuditLogs(c *fiber.Ctx) error {
	filter := domain.AuditLogFilter{
		Action:      c.Query("action"),
		PerformedBy: c.Query("performedBy"),
		Date:        c.Query("date"),
	}

	logs, err := h.adminService.AuditLogs(c.UserContext(), filter)
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "audit logs retrieved", logs)
}

func (h *AdminHandler) TokenUsage(c *fiber.Ctx) error {
	stats, err := h.adminService.TokenUsageStats(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "token usage retrieved", stats)
}

func (h *AdminHandler) SendInvitation(c *fiber.Ctx) error {
	var req domain.SendInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.adminService.SendInvitation(c.UserContext(), &req, performedBy(c))
	if err != nil {
		if errors.Is(err, service.ErrCandidateAlreadyInvited) {
			return response.BadRequest(c, "candidate already has a pending invitation")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusCreated, "invitation sent", result)
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	aiProvider, err := h.settingsService.AIProvider(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}
	voiceProvider, err := h.settingsService.VoiceProvider(c.UserContext())
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	settings := domain.ProviderSettings{
		AIProvider:    aiProvider,
		VoiceProvider: voiceProvider,
	}
	return response.Success(c, fiber.StatusOK, "settings retrieved", settings)
}

func (h *AdminHandler) SetAIProvider(c *fiber.Ctx) error {
	var req domain.UpdateProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.settingsService.SetAIProvider(c.UserContext(), req.Provider, performedBy(c)); err != nil {
		if errors.Is(err, service.ErrInvalidAIProvider) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "ai provider updated", nil)
}

func (h *AdminHandler) SetVoiceProvider(c *fiber.Ctx) error {
	var req domain.UpdateProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.settingsService.SetVoiceProvider(c.UserContext(), req.Provider, performedBy(c)); err != nil {
		if errors.Is(err, service.ErrInvalidVoiceProvider) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "voice provider updated", nil)
}

func performedBy(c *fiber.Ctx) string {
	if user := middleware.GetUserFromContext(c); user != nil {
		return user.Email
	}
	return "unknown"
}
