package repository

import (
	"context"

	"tribewave/internal/models"

	"gorm.io/gorm"
)

// BookingRepository defines the interface for booking request data operations.
type BookingRepository interface {
	Create(ctx context.Context, request *models.BookingRequest) error
	GetByID(ctx context.Context, id uint) (*models.BookingRequest, error)
	Save(ctx context.Context, request *models.BookingRequest) error
	// Delete removes the request from any state.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, status *models.BookingStatus) ([]*models.BookingRequest, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, request *models.BookingRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.BookingRequest, error) {
	var request models.BookingRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *bookingRepository) Save(ctx context.Context, request *models.BookingRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.BookingRequest{}, id).Error
}

func (r *bookingRepository) List(ctx context.Context, status *models.BookingStatus) ([]*models.BookingRequest, error) {
	var requests []*models.BookingRequest
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Order("submitted_at DESC, id DESC").Find(&requests).Error
	return requests, err
}
