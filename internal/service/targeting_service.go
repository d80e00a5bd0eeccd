package service

import (
	"context"

	"tribewave/internal/models"
	"tribewave/internal/repository"
)

// TargetingService resolves the visible, ordered content for a viewer
// context. Resolution is a pure function of repository state: the same query
// against unchanged data yields an identical, identically-ordered result.
type TargetingService struct {
	content repository.ContentRepository
}

// NewTargetingService returns a new TargetingService.
func NewTargetingService(content repository.ContentRepository) *TargetingService {
	return &TargetingService{content: content}
}

// Resolve returns active posts for the section visible to the tribe (scoped
// to it or to all tribes). Pinned posts sort before all unpinned posts; each
// partition orders by creation time descending with id breaking ties. limit
// truncates after ordering; limit <= 0 means unbounded.
func (s *TargetingService) Resolve(ctx context.Context, section models.Section, tribe models.Tribe, limit int) ([]*models.ContentPost, error) {
	if !section.Valid() {
		return nil, models.NewValidationError("unknown section")
	}
	// TribeAll is a legal viewer value: a visitor outside every tribe sees
	// only tribe-wide content.
	if !tribe.ValidTarget() {
		return nil, models.NewValidationError("unknown tribe")
	}

	posts, err := s.content.ListVisible(ctx, section, tribe, limit)
	if err != nil {
		return nil, models.NewPersistenceError("content resolve", err)
	}
	return posts, nil
}
