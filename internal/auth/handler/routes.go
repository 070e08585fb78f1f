package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/v1/signup", h.SignUp)
	app.Post("/api/v1/login", h.Login)
	app.Post("/api/v1/forgot-password", h.ForgotPassword)
	app.Post("/api/v1/reset-password", h.ResetPassword)
	app.Post("/api/v1/validate-token", h.ValidateToken)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
}
