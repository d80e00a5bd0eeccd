package repository

import (
	"context"

	"tribewave/internal/models"

	"gorm.io/gorm"
)

// ForumRepository defines the interface for forum post data operations.
type ForumRepository interface {
	Create(ctx context.Context, post *models.ForumPost) error
	GetByID(ctx context.Context, id uint) (*models.ForumPost, error)
	Save(ctx context.Context, post *models.ForumPost) error
	Delete(ctx context.Context, id uint) error
	ListByScope(ctx context.Context, scope models.Tribe, activeOnly bool) ([]*models.ForumPost, error)
	ListPending(ctx context.Context) ([]*models.ForumPost, error)
}

type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository creates a new forum repository.
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) Create(ctx context.Context, post *models.ForumPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *forumRepository) GetByID(ctx context.Context, id uint) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *forumRepository) Save(ctx context.Context, post *models.ForumPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *forumRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ForumPost{}, id).Error
}

func (r *forumRepository) ListByScope(ctx context.Context, scope models.Tribe, activeOnly bool) ([]*models.ForumPost, error) {
	var posts []*models.ForumPost
	q := r.db.WithContext(ctx).Where("target_tribe = ?", scope)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("official DESC, created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

func (r *forumRepository) ListPending(ctx context.Context) ([]*models.ForumPost, error) {
	var posts []*models.ForumPost
	err := r.db.WithContext(ctx).
		Where("active = ?", false).
		Order("created_at ASC, id ASC").
		Find(&posts).Error
	return posts, err
}
