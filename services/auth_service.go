// services/auth_service.go
package services

import (
	"pokedex-catalog/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthService struct {
	Gate   *middleware.Gate
	Logger *zap.Logger
}

func NewAuthService(gate *middleware.Gate, logger *zap.Logger) *AuthService {
	return &AuthService{Gate: gate, Logger: logger}
}

// Login checks the submitted credentials. Success marks the session and goes
// to the catalog home; failure returns to the login form without a message.
func (s *AuthService) Login(c *fiber.Ctx) error {
	if !s.Gate.CheckCredentials(c.FormValue("username"), c.FormValue("password")) {
		s.Logger.Info("login rejected", zap.String("ip", c.IP()))
		return c.Redirect("/login")
	}

	if err := s.Gate.MarkAuthenticated(s.Gate.Session(c)); err != nil {
		s.Logger.Error("failed to save session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("An error occurred while logging in")
	}

	s.Logger.Info("login accepted", zap.String("ip", c.IP()))
	return c.Redirect("/")
}
