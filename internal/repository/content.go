package repository

import (
	"context"

	"tribewave/internal/models"

	"gorm.io/gorm"
)

// ContentRepository defines the interface for content post data operations.
type ContentRepository interface {
	Create(ctx context.Context, post *models.ContentPost) error
	GetByID(ctx context.Context, id uint) (*models.ContentPost, error)
	// Update applies the given column values and bumps updated_at.
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	// Delete removes the post; deleting an absent id is not an error.
	Delete(ctx context.Context, id uint) error
	ListBySection(ctx context.Context, section models.Section) ([]*models.ContentPost, error)
	ListByTribe(ctx context.Context, tribe models.Tribe) ([]*models.ContentPost, error)
	// ListVisible returns active posts matching section and tribe (or "all"),
	// pinned first, then newest first, id as the final tiebreak. limit <= 0
	// means unbounded.
	ListVisible(ctx context.Context, section models.Section, tribe models.Tribe, limit int) ([]*models.ContentPost, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, post *models.ContentPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*models.ContentPost, error) {
	var post models.ContentPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *contentRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContentPost{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ContentPost{}, id).Error
}

func (r *contentRepository) ListBySection(ctx context.Context, section models.Section) ([]*models.ContentPost, error) {
	var posts []*models.ContentPost
	err := r.db.WithContext(ctx).
		Where("target_section = ?", section).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *contentRepository) ListByTribe(ctx context.Context, tribe models.Tribe) ([]*models.ContentPost, error) {
	var posts []*models.ContentPost
	err := r.db.WithContext(ctx).
		Where("target_tribe = ? OR target_tribe = ?", tribe, models.TribeAll).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *contentRepository) ListVisible(ctx context.Context, section models.Section, tribe models.Tribe, limit int) ([]*models.ContentPost, error) {
	var posts []*models.ContentPost
	q := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("target_section = ?", section).
		Where("target_tribe = ? OR target_tribe = ?", tribe, models.TribeAll).
		Order("pinned DESC, created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&posts).Error
	return posts, err
}
