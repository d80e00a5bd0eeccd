package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tribewave/internal/models"
	"tribewave/internal/notifications"
	"tribewave/internal/repository"
	"tribewave/internal/validation"

	"gorm.io/gorm"
)

// SubmitFanArtInput carries a community fan-art submission.
type SubmitFanArtInput struct {
	Title        string
	ArtistName   string
	ContactEmail string
	SocialHandle string
	Description  string
	ImageRef     string
}

// FanArtService governs the fan-art approval workflow:
// pending -> approved, or pending -> hard delete on rejection.
type FanArtService struct {
	fanArt   repository.FanArtRepository
	notifier *notifications.Notifier
}

// NewFanArtService returns a new FanArtService.
func NewFanArtService(fanArt repository.FanArtRepository, notifier *notifications.Notifier) *FanArtService {
	return &FanArtService{fanArt: fanArt, notifier: notifier}
}

// Submit stores a new submission in the pending state.
func (s *FanArtService) Submit(ctx context.Context, in SubmitFanArtInput) (*models.FanArtSubmission, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("title is required")
	}
	if err := validation.ValidateDisplayName(in.ArtistName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.ContactEmail); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.ImageRef) == "" {
		return nil, models.NewValidationError("image reference is required")
	}

	submission := &models.FanArtSubmission{
		Title:        strings.TrimSpace(in.Title),
		ArtistName:   strings.TrimSpace(in.ArtistName),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		SocialHandle: strings.TrimSpace(in.SocialHandle),
		Description:  strings.TrimSpace(in.Description),
		ImageRef:     in.ImageRef,
		State:        models.FanArtStatePending,
	}
	if err := s.fanArt.Create(ctx, submission); err != nil {
		return nil, models.NewPersistenceError("fan art create", err)
	}
	return submission, nil
}

// Approve moves a pending submission to approved and stamps the approval
// time. Re-approving an approved submission is a no-op.
func (s *FanArtService) Approve(ctx context.Context, id uint) (*models.FanArtSubmission, error) {
	submission, err := s.fanArt.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("FanArtSubmission", id)
		}
		return nil, models.NewPersistenceError("fan art lookup", err)
	}

	if submission.State == models.FanArtStateApproved {
		return submission, nil
	}

	now := time.Now()
	submission.State = models.FanArtStateApproved
	submission.ApprovedAt = &now
	if err := s.fanArt.Save(ctx, submission); err != nil {
		return nil, models.NewPersistenceError("fan art approve", err)
	}

	s.notifier.PublishEvent(ctx, notifications.Event{
		Type:    notifications.EventFanArtApproved,
		Subject: submission.ID,
		Fields:  map[string]interface{}{"artist": submission.ArtistName},
	})

	return submission, nil
}

// Reject removes a pending submission outright; no rejected tombstone is
// kept. Rejecting an absent id is a no-op; rejecting an approved submission
// is an invalid transition.
func (s *FanArtService) Reject(ctx context.Context, id uint) error {
	submission, err := s.fanArt.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewPersistenceError("fan art lookup", err)
	}

	if submission.State != models.FanArtStatePending {
		return models.NewInvalidTransitionError("FanArtSubmission", submission.State, "rejected")
	}

	if err := s.fanArt.Delete(ctx, id); err != nil {
		return models.NewPersistenceError("fan art reject", err)
	}
	return nil
}

// ToggleFeatured flips the featured flag. Featuring only applies to approved
// submissions; anything else is a no-op returning the unchanged record.
func (s *FanArtService) ToggleFeatured(ctx context.Context, id uint) (*models.FanArtSubmission, error) {
	submission, err := s.fanArt.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("FanArtSubmission", id)
		}
		return nil, models.NewPersistenceError("fan art lookup", err)
	}

	if submission.State != models.FanArtStateApproved {
		return submission, nil
	}

	submission.Featured = !submission.Featured
	if err := s.fanArt.Save(ctx, submission); err != nil {
		return nil, models.NewPersistenceError("fan art feature", err)
	}
	return submission, nil
}

// Gallery lists approved submissions, the only ones eligible for public view.
func (s *FanArtService) Gallery(ctx context.Context) ([]*models.FanArtSubmission, error) {
	submissions, err := s.fanArt.ListByState(ctx, models.FanArtStateApproved)
	if err != nil {
		return nil, models.NewPersistenceError("fan art gallery", err)
	}
	return submissions, nil
}

// PendingQueue lists submissions awaiting review, for the admin area.
func (s *FanArtService) PendingQueue(ctx context.Context) ([]*models.FanArtSubmission, error) {
	submissions, err := s.fanArt.ListByState(ctx, models.FanArtStatePending)
	if err != nil {
		return nil, models.NewPersistenceError("fan art queue", err)
	}
	return submissions, nil
}
