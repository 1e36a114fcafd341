package handler

import (
	"errors"

	"github.com/firstroundai/interview-server/internal/domain"
	"github.com/firstroundai/interview-server/internal/middleware"
	"github.com/firstroundai/interview-server/internal/service"
	"github.com/firstroundai/interview-server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService domain.AuthService
}

func NewAuthHandler(authService domain.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req domain.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return response.BadRequest(c, "email is already registered")
		}
		if errors.Is(err, service.ErrInvalidInvitation) {
			return response.BadRequest(c, "invitation token is invalid or already used")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusCreated, "account created", result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStruct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return response.Unauthorized(c, "invalid email or password")
		}
		if errors.Is(err, service.ErrCandidateDisqualified) {
			return response.Forbidden(c, "candidate has been disqualified")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "login successful", result)
}

func (h *AuthHandler) Invitation(c *fiber.Ctx) error {
	invitation, err := h.authService.InvitationByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInvitation) {
			return response.NotFound(c, "invitation not found")
		}
		return response.InternalError(c, err.Error())
	}

	return response.Success(c, fiber.StatusOK, "invitation retrieved", invitation)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, "user not authenticated")
	}

	return response.Success(c, fiber.StatusOK, "user retrieved", user)
}
