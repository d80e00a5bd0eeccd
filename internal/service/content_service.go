package service

import (
	"context"
	"errors"
	"strings"

	"tribewave/internal/models"
	"tribewave/internal/notifications"
	"tribewave/internal/repository"

	"gorm.io/gorm"
)

// CreateContentInput carries the fields for a new content post.
type CreateContentInput struct {
	Title         string
	Body          string
	Kind          models.ContentKind
	TargetSection models.Section
	TargetTribe   models.Tribe
	Active        bool
	Pinned        bool
	DisplayOrder  int
	Author        string
	Tags          string
}

// UpdateContentInput carries a partial content update; nil fields are left
// untouched.
type UpdateContentInput struct {
	Title        *string
	Body         *string
	TargetTribe  *models.Tribe
	Active       *bool
	Pinned       *bool
	DisplayOrder *int
	Tags         *string
}

// ContentService stores and curates content posts. Tribe/section combination
// validity beyond presence is the targeting resolver's concern.
type ContentService struct {
	content  repository.ContentRepository
	notifier *notifications.Notifier
}

// NewContentService returns a new ContentService.
func NewContentService(content repository.ContentRepository, notifier *notifications.Notifier) *ContentService {
	return &ContentService{content: content, notifier: notifier}
}

// Create validates required fields and inserts the post. Community
// submissions arrive with Active false and wait for moderation.
func (s *ContentService) Create(ctx context.Context, in CreateContentInput) (*models.ContentPost, error) {
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("title or body is required")
	}
	if !in.TargetSection.Valid() {
		return nil, models.NewValidationError("target section is required")
	}
	if !in.Kind.Valid() {
		return nil, models.NewValidationError("unknown content kind")
	}
	tribe := in.TargetTribe
	if tribe == models.TribeNone {
		tribe = models.TribeAll
	}
	if !tribe.ValidTarget() {
		return nil, models.NewValidationError("unknown target tribe")
	}
	if in.Kind.BodyIsURL() && strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("media posts need a reference URL body")
	}

	post := &models.ContentPost{
		Title:         strings.TrimSpace(in.Title),
		Body:          strings.TrimSpace(in.Body),
		Kind:          in.Kind,
		TargetSection: in.TargetSection,
		TargetTribe:   tribe,
		Active:        in.Active,
		Pinned:        in.Pinned,
		DisplayOrder:  in.DisplayOrder,
		Author:        strings.TrimSpace(in.Author),
		Tags:          in.Tags,
	}
	if err := s.content.Create(ctx, post); err != nil {
		return nil, models.NewPersistenceError("content create", err)
	}

	if post.Active {
		s.notifier.PublishEvent(ctx, notifications.Event{
			Type:    notifications.EventContentPublished,
			Subject: post.ID,
			Fields: map[string]interface{}{
				"section": string(post.TargetSection),
				"tribe":   string(post.TargetTribe),
			},
		})
	}
	s.notifier.PublishContentChange(ctx, post.TargetSection)

	return post, nil
}

// Update merges the given fields into the post and bumps updated_at.
func (s *ContentService) Update(ctx context.Context, id uint, in UpdateContentInput) (*models.ContentPost, error) {
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Body != nil {
		fields["body"] = strings.TrimSpace(*in.Body)
	}
	if in.TargetTribe != nil {
		if !in.TargetTribe.ValidTarget() {
			return nil, models.NewValidationError("unknown target tribe")
		}
		fields["target_tribe"] = *in.TargetTribe
	}
	if in.Active != nil {
		fields["active"] = *in.Active
	}
	if in.Pinned != nil {
		fields["pinned"] = *in.Pinned
	}
	if in.DisplayOrder != nil {
		fields["display_order"] = *in.DisplayOrder
	}
	if in.Tags != nil {
		fields["tags"] = *in.Tags
	}
	if len(fields) == 0 {
		return nil, models.NewValidationError("no fields to update")
	}

	if err := s.content.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ContentPost", id)
		}
		return nil, models.NewPersistenceError("content update", err)
	}

	post, err := s.content.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewPersistenceError("content reload", err)
	}

	wasActivated := in.Active != nil && *in.Active
	if wasActivated {
		s.notifier.PublishEvent(ctx, notifications.Event{
			Type:    notifications.EventContentPublished,
			Subject: post.ID,
			Fields: map[string]interface{}{
				"section": string(post.TargetSection),
				"tribe":   string(post.TargetTribe),
			},
		})
	}
	s.notifier.PublishContentChange(ctx, post.TargetSection)

	return post, nil
}

// Delete removes the post. Deleting an absent id is a no-op.
func (s *ContentService) Delete(ctx context.Context, id uint) error {
	post, err := s.content.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewPersistenceError("content lookup", err)
	}
	if err := s.content.Delete(ctx, id); err != nil {
		return models.NewPersistenceError("content delete", err)
	}
	s.notifier.PublishContentChange(ctx, post.TargetSection)
	return nil
}

// Get returns a single post by id.
func (s *ContentService) Get(ctx context.Context, id uint) (*models.ContentPost, error) {
	post, err := s.content.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ContentPost", id)
		}
		return nil, models.NewPersistenceError("content lookup", err)
	}
	return post, nil
}

// ListBySection returns every post targeting the section, regardless of state.
func (s *ContentService) ListBySection(ctx context.Context, section models.Section) ([]*models.ContentPost, error) {
	if !section.Valid() {
		return nil, models.NewValidationError("unknown section")
	}
	posts, err := s.content.ListBySection(ctx, section)
	if err != nil {
		return nil, models.NewPersistenceError("content list", err)
	}
	return posts, nil
}

// ListByTribe returns every post targeting the tribe or all tribes.
func (s *ContentService) ListByTribe(ctx context.Context, tribe models.Tribe) ([]*models.ContentPost, error) {
	if !tribe.Valid() {
		return nil, models.NewValidationError("unknown tribe")
	}
	posts, err := s.content.ListByTribe(ctx, tribe)
	if err != nil {
		return nil, models.NewPersistenceError("content list", err)
	}
	return posts, nil
}
