package server

import (
	"strconv"

	"tribewave/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a numeric path parameter. On failure it writes the error
// response and returns ok=false; the handler should return nil.
func (s *Server) parseID(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// respondErr maps an AppError to its HTTP status and writes the response.
func respondErr(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// visitorID returns the caller's visitor identity, or "" when absent.
func visitorID(c *fiber.Ctx) string {
	vid, _ := c.Locals("visitorID").(string)
	return vid
}
