package repository

import (
	"context"

	"tribewave/internal/models"

	"gorm.io/gorm"
)

// FanArtRepository defines the interface for fan art submission data operations.
type FanArtRepository interface {
	Create(ctx context.Context, submission *models.FanArtSubmission) error
	GetByID(ctx context.Context, id uint) (*models.FanArtSubmission, error)
	Save(ctx context.Context, submission *models.FanArtSubmission) error
	// Delete removes the submission; deleting an absent id is not an error.
	Delete(ctx context.Context, id uint) error
	ListByState(ctx context.Context, state models.FanArtState) ([]*models.FanArtSubmission, error)
}

type fanArtRepository struct {
	db *gorm.DB
}

// NewFanArtRepository creates a new fan art repository.
func NewFanArtRepository(db *gorm.DB) FanArtRepository {
	return &fanArtRepository{db: db}
}

func (r *fanArtRepository) Create(ctx context.Context, submission *models.FanArtSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *fanArtRepository) GetByID(ctx context.Context, id uint) (*models.FanArtSubmission, error) {
	var submission models.FanArtSubmission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *fanArtRepository) Save(ctx context.Context, submission *models.FanArtSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *fanArtRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FanArtSubmission{}, id).Error
}

func (r *fanArtRepository) ListByState(ctx context.Context, state models.FanArtState) ([]*models.FanArtSubmission, error) {
	var submissions []*models.FanArtSubmission
	err := r.db.WithContext(ctx).
		Where("state = ?", state).
		Order("featured DESC, submitted_at DESC, id DESC").
		Find(&submissions).Error
	return submissions, err
}
