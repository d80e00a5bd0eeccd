package server

import (
	"bytes"
	"io"

	"tribewave/internal/images"
	"tribewave/internal/models"
	"tribewave/internal/service"

	"github.com/gofiber/fiber/v2"
)

type submitFanArtRequest struct {
	Title        string `json:"title"`
	ArtistName   string `json:"artist_name"`
	ContactEmail string `json:"contact_email"`
	SocialHandle string `json:"social_handle"`
	Description  string `json:"description"`
}

// SubmitFanArt handles POST /api/fanart. The artwork arrives as a multipart
// upload; the stored asset reference is persisted with the submission.
func (s *Server) SubmitFanArt(c *fiber.Ctx) error {
	ctx := c.UserContext()

	req := submitFanArtRequest{
		Title:        c.FormValue("title"),
		ArtistName:   c.FormValue("artist_name"),
		ContactEmail: c.FormValue("contact_email"),
		SocialHandle: c.FormValue("social_handle"),
		Description:  c.FormValue("description"),
	}

	file, err := c.FormFile("image")
	if err != nil {
		return respondErr(c, models.NewValidationError("image upload is required"))
	}
	src, err := file.Open()
	if err != nil {
		return respondErr(c, models.NewValidationError("image upload unreadable"))
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, images.MaxUploadBytes+1))
	if err != nil {
		return respondErr(c, models.NewValidationError("image upload unreadable"))
	}

	// Decode-validate and re-encode; raw upload bytes are never stored.
	normalized, err := images.Normalize(content)
	if err != nil {
		return respondErr(c, models.NewValidationError(err.Error()))
	}

	imageRef, err := s.assets.Put(ctx, "art.webp", bytes.NewReader(normalized))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	submission, err := s.fanArt.Submit(ctx, service.SubmitFanArtInput{
		Title:        req.Title,
		ArtistName:   req.ArtistName,
		ContactEmail: req.ContactEmail,
		SocialHandle: req.SocialHandle,
		Description:  req.Description,
		ImageRef:     imageRef,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(submission)
}

// ListGallery handles GET /api/fanart (approved submissions only).
func (s *Server) ListGallery(c *fiber.Ctx) error {
	submissions, err := s.fanArt.Gallery(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(submissions)
}

// ListPendingFanArt handles GET /api/fanart/pending (admin).
func (s *Server) ListPendingFanArt(c *fiber.Ctx) error {
	submissions, err := s.fanArt.PendingQueue(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(submissions)
}

// ApproveFanArt handles POST /api/fanart/:id/approve (admin).
func (s *Server) ApproveFanArt(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	submission, err := s.fanArt.Approve(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(submission)
}

// RejectFanArt handles POST /api/fanart/:id/reject (admin). Removes the
// record outright.
func (s *Server) RejectFanArt(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	if err := s.fanArt.Reject(c.UserContext(), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Submission rejected"})
}

// ToggleFanArtFeatured handles POST /api/fanart/:id/feature (admin).
func (s *Server) ToggleFanArtFeatured(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	submission, err := s.fanArt.ToggleFeatured(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(submission)
}
