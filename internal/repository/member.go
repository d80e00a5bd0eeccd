// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"tribewave/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberRepository defines the interface for tribe membership data operations.
type MemberRepository interface {
	// Upsert inserts or refreshes the (visitor, tribe) membership row and
	// marks it as the visitor's active tribe.
	Upsert(ctx context.Context, member *models.TribeMember) error
	GetByVisitorAndTribe(ctx context.Context, visitorID string, tribe models.Tribe) (*models.TribeMember, error)
	ListByVisitor(ctx context.Context, visitorID string) ([]*models.TribeMember, error)
	// ActiveTribe returns the visitor's currently active membership, or
	// gorm.ErrRecordNotFound if the visitor never joined.
	ActiveTribe(ctx context.Context, visitorID string) (*models.TribeMember, error)
	// SetActive flips the active flag to the given tribe's row.
	SetActive(ctx context.Context, visitorID string, tribe models.Tribe) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Upsert(ctx context.Context, member *models.TribeMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if member.JoinedAt.IsZero() {
			member.JoinedAt = time.Now()
		}
		member.IsActive = true

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "visitor_id"}, {Name: "tribe"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "email", "phone", "location", "reason", "is_active", "updated_at",
			}),
		}).Create(member).Error; err != nil {
			return err
		}

		// Exactly one active tribe per visitor.
		if err := tx.Model(&models.TribeMember{}).
			Where("visitor_id = ? AND tribe <> ?", member.VisitorID, member.Tribe).
			Update("is_active", false).Error; err != nil {
			return err
		}

		// On the conflict path DO UPDATE leaves the autoincrement id
		// unset; reload so callers see the stored row.
		return tx.Where("visitor_id = ? AND tribe = ?", member.VisitorID, member.Tribe).
			First(member).Error
	})
}

func (r *memberRepository) GetByVisitorAndTribe(ctx context.Context, visitorID string, tribe models.Tribe) (*models.TribeMember, error) {
	var member models.TribeMember
	err := r.db.WithContext(ctx).
		Where("visitor_id = ? AND tribe = ?", visitorID, tribe).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListByVisitor(ctx context.Context, visitorID string) ([]*models.TribeMember, error) {
	var members []*models.TribeMember
	err := r.db.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepository) ActiveTribe(ctx context.Context, visitorID string) (*models.TribeMember, error) {
	var member models.TribeMember
	err := r.db.WithContext(ctx).
		Where("visitor_id = ? AND is_active = ?", visitorID, true).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) SetActive(ctx context.Context, visitorID string, tribe models.Tribe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TribeMember{}).
			Where("visitor_id = ?", visitorID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.TribeMember{}).
			Where("visitor_id = ? AND tribe = ?", visitorID, tribe).
			Update("is_active", true).Error
	})
}
