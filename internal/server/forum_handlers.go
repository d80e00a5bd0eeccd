package server

import (
	"tribewave/internal/models"
	"tribewave/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createForumPostRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	TargetTribe string `json:"target_tribe"`
	Category    string `json:"category"`
}

// CreateForumPost handles POST /api/forum. Community posts start pending;
// an admin token makes the post official and immediately active.
func (s *Server) CreateForumPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req createForumPostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("invalid request body"))
	}

	_, isAdmin := c.Locals("adminUser").(string)

	post, err := s.forum.Create(ctx, service.CreateForumPostInput{
		Title:       req.Title,
		Body:        req.Body,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		TargetTribe: models.Tribe(req.TargetTribe),
		Category:    req.Category,
		Admin:       isAdmin,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListForumBoard handles GET /api/forum/:scope (active posts only).
func (s *Server) ListForumBoard(c *fiber.Ctx) error {
	posts, err := s.forum.Board(c.UserContext(), models.Tribe(c.Params("scope")))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(posts)
}

// ListPendingForumPosts handles GET /api/forum/pending/queue (admin).
func (s *Server) ListPendingForumPosts(c *fiber.Ctx) error {
	posts, err := s.forum.PendingQueue(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(posts)
}

// ActivateForumPost handles POST /api/forum/:id/activate (admin).
func (s *Server) ActivateForumPost(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	post, err := s.forum.Activate(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// DeleteForumPost handles DELETE /api/forum/:id (admin).
func (s *Server) DeleteForumPost(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	if err := s.forum.Delete(c.UserContext(), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
