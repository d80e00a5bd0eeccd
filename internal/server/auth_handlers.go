package server

import (
	"tribewave/internal/models"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin handles POST /api/auth/login and returns an admin JWT.
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return respondErr(c, models.NewValidationError("username and password are required"))
	}

	token, err := s.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}
