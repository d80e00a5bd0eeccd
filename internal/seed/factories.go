package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tribewave/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory generates volume demo data for local environments. Not used by the
// production seed path.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a Factory bound to the given database.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// spreadBack returns a timestamp up to maxDays in the past, so listings show
// a realistic age distribution.
func (f *Factory) spreadBack(maxDays int) time.Time {
	return time.Now().
		Add(-time.Duration(f.rnd.Intn(maxDays*24)) * time.Hour).
		Add(-time.Duration(f.rnd.Intn(60)) * time.Minute)
}

// ForumPosts inserts n active posts on the given board with generated authors
// and board-appropriate categories.
func (f *Factory) ForumPosts(ctx context.Context, scope models.Tribe, n int) error {
	categories := models.ForumCategories[scope]
	if len(categories) == 0 {
		return fmt.Errorf("unknown forum scope %q", scope)
	}
	for i := 0; i < n; i++ {
		post := models.ForumPost{
			Title:       gofakeit.Sentence(5),
			Body:        gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorName:  gofakeit.Name(),
			AuthorEmail: gofakeit.Email(),
			TargetTribe: scope,
			Category:    categories[f.rnd.Intn(len(categories))],
			Active:      true,
			CreatedAt:   f.spreadBack(60),
		}
		if err := f.db.WithContext(ctx).Create(&post).Error; err != nil {
			return fmt.Errorf("demo forum post: %w", err)
		}
	}
	return nil
}

// Members inserts n members of the given tribe, each under a fresh visitor id.
func (f *Factory) Members(ctx context.Context, tribe models.Tribe, n int) error {
	for i := 0; i < n; i++ {
		member := models.TribeMember{
			VisitorID: uuid.NewString(),
			Tribe:     tribe,
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Location:  gofakeit.City(),
			Reason:    gofakeit.Sentence(8),
			IsActive:  true,
			JoinedAt:  f.spreadBack(120),
		}
		if err := f.db.WithContext(ctx).Create(&member).Error; err != nil {
			return fmt.Errorf("demo member: %w", err)
		}
	}
	return nil
}

// Demo fills every forum board and tribe with perGroup generated records.
func Demo(ctx context.Context, db *gorm.DB, perGroup int) error {
	f := NewFactory(db)

	scopes := append([]models.Tribe{models.TribeMain}, models.Tribes...)
	for _, scope := range scopes {
		if err := f.ForumPosts(ctx, scope, perGroup); err != nil {
			return err
		}
	}
	for _, tribe := range models.Tribes {
		if err := f.Members(ctx, tribe, perGroup); err != nil {
			return err
		}
	}
	return nil
}
