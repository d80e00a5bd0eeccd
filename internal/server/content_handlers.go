package server

import (
	"strconv"

	"tribewave/internal/models"
	"tribewave/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createContentRequest struct {
	Title         string `json:"title"`
	Body          string `json:"body"`
	Kind          string `json:"kind"`
	TargetSection string `json:"target_section"`
	TargetTribe   string `json:"target_tribe"`
	Active        bool   `json:"active"`
	Pinned        bool   `json:"pinned"`
	DisplayOrder  int    `json:"display_order"`
	Author        string `json:"author"`
	Tags          string `json:"tags"`
}

type updateContentRequest struct {
	Title        *string `json:"title"`
	Body         *string `json:"body"`
	TargetTribe  *string `json:"target_tribe"`
	Active       *bool   `json:"active"`
	Pinned       *bool   `json:"pinned"`
	DisplayOrder *int    `json:"display_order"`
	Tags         *string `json:"tags"`
}

// ResolveContent handles GET /api/content/resolve?section=&tribe=&limit=.
// When tribe is omitted, the visitor's active tribe is used.
func (s *Server) ResolveContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	section := models.Section(c.Query("section"))
	tribe := models.Tribe(c.Query("tribe"))

	if tribe == models.TribeNone {
		if vid := visitorID(c); vid != "" {
			current, err := s.membership.CurrentTribe(ctx, vid)
			if err != nil {
				return respondErr(c, err)
			}
			tribe = current
		}
	}
	if tribe == models.TribeNone {
		// Visitors outside every tribe see only tribe-wide content.
		tribe = models.TribeAll
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return respondErr(c, models.NewValidationError("invalid limit"))
		}
		limit = parsed
	}

	posts, err := s.targeting.Resolve(ctx, section, tribe, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(posts)
}

// ContentChanges handles GET /api/content/changes. It returns the last
// change timestamp per section so clients can poll cheaply.
func (s *Server) ContentChanges(c *fiber.Ctx) error {
	return c.JSON(s.changes.snapshot())
}

// CreateContent handles POST /api/content (admin).
func (s *Server) CreateContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req createContentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("invalid request body"))
	}

	author := req.Author
	if author == "" {
		author, _ = c.Locals("adminUser").(string)
	}

	post, err := s.content.Create(ctx, service.CreateContentInput{
		Title:         req.Title,
		Body:          req.Body,
		Kind:          models.ContentKind(req.Kind),
		TargetSection: models.Section(req.TargetSection),
		TargetTribe:   models.Tribe(req.TargetTribe),
		Active:        req.Active,
		Pinned:        req.Pinned,
		DisplayOrder:  req.DisplayOrder,
		Author:        author,
		Tags:          req.Tags,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateContent handles PATCH /api/content/:id (admin).
func (s *Server) UpdateContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	var req updateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("invalid request body"))
	}

	in := service.UpdateContentInput{
		Title:        req.Title,
		Body:         req.Body,
		Active:       req.Active,
		Pinned:       req.Pinned,
		DisplayOrder: req.DisplayOrder,
		Tags:         req.Tags,
	}
	if req.TargetTribe != nil {
		tribe := models.Tribe(*req.TargetTribe)
		in.TargetTribe = &tribe
	}

	post, err := s.content.Update(ctx, id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// DeleteContent handles DELETE /api/content/:id (admin). Idempotent.
func (s *Server) DeleteContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	if err := s.content.Delete(ctx, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Content deleted"})
}

// ListSectionContent handles GET /api/content/sections/:section (admin).
func (s *Server) ListSectionContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	posts, err := s.content.ListBySection(ctx, models.Section(c.Params("section")))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(posts)
}

// ListTribeContent handles GET /api/content/tribes/:tribe (admin).
func (s *Server) ListTribeContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	posts, err := s.content.ListByTribe(ctx, models.Tribe(c.Params("tribe")))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(posts)
}
