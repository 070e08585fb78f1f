package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/yudhapratama/auth-service/internal/auth/dto"
	"github.com/yudhapratama/auth-service/internal/auth/service"
	autherror "github.com/yudhapratama/auth-service/internal/errors"
)

type AuthHandler struct {
	userService *service.UserService
	logger      *slog.Logger
}

func NewAuthHandler(userService *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, logger: logger}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var input dto.SignUpInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	out, err := h.userService.SignUp(c.Context(), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	out, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	out, err := h.userService.ForgotPassword(c.Context(), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	out, err := h.userService.ResetPassword(c.Context(), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var input dto.ValidateTokenInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	out, err := h.userService.ValidateToken(c.Context(), input)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// renderError maps error kinds to HTTP status codes. Store and internal
// failures are logged in full and returned as a generic message.
func (h *AuthHandler) renderError(c *fiber.Ctx, err error) error {
	switch autherror.KindOf(err) {
	case autherror.KindValidation, autherror.KindBadRequest:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case autherror.KindAlreadyExists:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case autherror.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	default:
		h.logger.ErrorContext(c.Context(), "request failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
