package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"tribewave/internal/models"
	"tribewave/internal/notifications"
	"tribewave/internal/ratelimit"
	"tribewave/internal/repository"
	"tribewave/internal/validation"

	"gorm.io/gorm"
)

// CreateForumPostInput carries a new discussion post.
type CreateForumPostInput struct {
	Title       string
	Body        string
	AuthorName  string
	AuthorEmail string
	TargetTribe models.Tribe
	Category    string
	// Admin posts are created active and marked official.
	Admin bool
}

// ForumService governs forum posts. Community posts start inactive pending
// review; the only moderation transition is activation.
type ForumService struct {
	forum    repository.ForumRepository
	limiter  ratelimit.Limiter
	notifier *notifications.Notifier
}

// NewForumService returns a new ForumService. limiter may be nil to disable
// the per-author creation guard.
func NewForumService(forum repository.ForumRepository, limiter ratelimit.Limiter, notifier *notifications.Notifier) *ForumService {
	return &ForumService{forum: forum, limiter: limiter, notifier: notifier}
}

// Create stores a new post. Community posts are rate limited per author and
// start inactive; admin posts are official and immediately active.
func (s *ForumService) Create(ctx context.Context, in CreateForumPostInput) (*models.ForumPost, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("title is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("body is required")
	}
	if err := validation.ValidateDisplayName(in.AuthorName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.AuthorEmail); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	scope := in.TargetTribe
	if scope == models.TribeNone {
		scope = models.TribeMain
	}
	if !models.ValidForumScope(scope) {
		return nil, models.NewValidationError("unknown forum scope")
	}
	if !models.ValidForumCategory(scope, in.Category) {
		return nil, models.NewValidationError("unknown category for this board")
	}

	if !in.Admin && s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, "forum-post", strings.ToLower(strings.TrimSpace(in.AuthorEmail)))
		if err != nil {
			// The guard store being down should not block posting.
			slog.WarnContext(ctx, "forum rate limit check failed", "err", err)
		} else if !allowed {
			return nil, models.NewValidationError("too many posts, try again later")
		}
	}

	post := &models.ForumPost{
		Title:       strings.TrimSpace(in.Title),
		Body:        strings.TrimSpace(in.Body),
		AuthorName:  strings.TrimSpace(in.AuthorName),
		AuthorEmail: strings.TrimSpace(in.AuthorEmail),
		TargetTribe: scope,
		Category:    in.Category,
		Active:      in.Admin,
		Official:    in.Admin,
	}
	if err := s.forum.Create(ctx, post); err != nil {
		return nil, models.NewPersistenceError("forum create", err)
	}
	return post, nil
}

// Activate approves a pending post. Activating an already-active post is a
// no-op. There is no reject transition: unapproved posts stay invisible until
// activated or deleted.
func (s *ForumService) Activate(ctx context.Context, id uint) (*models.ForumPost, error) {
	post, err := s.forum.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ForumPost", id)
		}
		return nil, models.NewPersistenceError("forum lookup", err)
	}

	if post.Active {
		return post, nil
	}

	post.Active = true
	if err := s.forum.Save(ctx, post); err != nil {
		return nil, models.NewPersistenceError("forum activate", err)
	}

	s.notifier.PublishEvent(ctx, notifications.Event{
		Type:    notifications.EventForumPostActivated,
		Subject: post.ID,
		Fields:  map[string]interface{}{"scope": string(post.TargetTribe)},
	})

	return post, nil
}

// Delete removes a post; used for pruning never-activated submissions.
func (s *ForumService) Delete(ctx context.Context, id uint) error {
	if err := s.forum.Delete(ctx, id); err != nil {
		return models.NewPersistenceError("forum delete", err)
	}
	return nil
}

// Board lists the active posts for a forum scope.
func (s *ForumService) Board(ctx context.Context, scope models.Tribe) ([]*models.ForumPost, error) {
	if !models.ValidForumScope(scope) {
		return nil, models.NewValidationError("unknown forum scope")
	}
	posts, err := s.forum.ListByScope(ctx, scope, true)
	if err != nil {
		return nil, models.NewPersistenceError("forum list", err)
	}
	return posts, nil
}

// PendingQueue lists posts awaiting activation, for the admin area.
func (s *ForumService) PendingQueue(ctx context.Context) ([]*models.ForumPost, error) {
	posts, err := s.forum.ListPending(ctx)
	if err != nil {
		return nil, models.NewPersistenceError("forum queue", err)
	}
	return posts, nil
}
