package server

import (
	"tribewave/internal/models"
	"tribewave/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type joinRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Reason   string `json:"reason"`
}

type joinResponse struct {
	VisitorID string              `json:"visitor_id"`
	Member    *models.TribeMember `json:"member"`
}

// JoinTribe handles POST /api/tribes/:tribe/join. A visitor without an
// identity gets one issued here and must present it on later calls.
func (s *Server) JoinTribe(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req joinRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("invalid request body"))
	}

	vid := visitorID(c)
	if vid == "" {
		vid = uuid.NewString()
	}

	member, err := s.membership.Join(ctx, service.JoinInput{
		VisitorID: vid,
		Tribe:     models.Tribe(c.Params("tribe")),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Location:  req.Location,
		Reason:    req.Reason,
	})
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(joinResponse{VisitorID: vid, Member: member})
}

// SwitchTribe handles POST /api/tribes/:tribe/switch.
func (s *Server) SwitchTribe(c *fiber.Ctx) error {
	ctx := c.UserContext()

	vid := visitorID(c)
	if vid == "" {
		return respondErr(c, models.NewValidationError("X-Visitor-ID header required"))
	}

	if err := s.membership.SwitchActive(ctx, vid, models.Tribe(c.Params("tribe"))); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"active_tribe": c.Params("tribe")})
}

// GetMembership handles GET /api/tribes/:tribe/membership.
func (s *Server) GetMembership(c *fiber.Ctx) error {
	ctx := c.UserContext()

	tribe := models.Tribe(c.Params("tribe"))
	if !tribe.Valid() {
		return respondErr(c, models.NewValidationError("unknown tribe"))
	}

	vid := visitorID(c)
	if vid == "" {
		return c.JSON(fiber.Map{"member": false})
	}

	isMember, err := s.membership.IsMember(ctx, vid, tribe)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"member": isMember})
}

// GetCurrentTribe handles GET /api/me/tribe.
func (s *Server) GetCurrentTribe(c *fiber.Ctx) error {
	ctx := c.UserContext()

	vid := visitorID(c)
	if vid == "" {
		return c.JSON(fiber.Map{"tribe": nil})
	}

	tribe, err := s.membership.CurrentTribe(ctx, vid)
	if err != nil {
		return respondErr(c, err)
	}
	if tribe == models.TribeNone {
		return c.JSON(fiber.Map{"tribe": nil})
	}
	return c.JSON(fiber.Map{"tribe": tribe})
}
