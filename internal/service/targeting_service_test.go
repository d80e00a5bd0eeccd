package service

import (
	"context"
	"testing"
	"time"

	"tribewave/internal/models"
	"tribewave/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, post models.ContentPost) models.ContentPost {
	t.Helper()
	require.NoError(t, db.Create(&post).Error)
	return post
}

func newTargetingFixture(t *testing.T) (*TargetingService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewTargetingService(repository.NewContentRepository(db)), db
}

func TestResolveTribeScoping(t *testing.T) {
	svc, db := newTargetingFixture(t)
	ctx := context.Background()

	seedPost(t, db, models.ContentPost{
		Title: "red only", Kind: models.ContentKindAnnouncement,
		TargetSection: models.SectionTribe, TargetTribe: models.TribeRed, Active: true,
	})
	shared := seedPost(t, db, models.ContentPost{
		Title: "everyone", Kind: models.ContentKindAnnouncement,
		TargetSection: models.SectionTribe, TargetTribe: models.TribeAll, Active: true,
	})

	posts, err := svc.Resolve(ctx, models.SectionTribe, models.TribeYellow, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, shared.ID, posts[0].ID)

	posts, err = svc.Resolve(ctx, models.SectionTribe, models.TribeRed, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestResolveExcludesInactiveAndOtherSections(t *testing.T) {
	svc, db := newTargetingFixture(t)
	ctx := context.Background()

	seedPost(t, db, models.ContentPost{
		Title: "draft", Kind: models.ContentKindQuote,
		TargetSection: models.SectionHome, TargetTribe: models.TribeAll, Active: false,
	})
	seedPost(t, db, models.ContentPost{
		Title: "elsewhere", Kind: models.ContentKindQuote,
		TargetSection: models.SectionMusic, TargetTribe: models.TribeAll, Active: true,
	})

	posts, err := svc.Resolve(ctx, models.SectionHome, models.TribeRed, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestResolvePinPriority(t *testing.T) {
	svc, db := newTargetingFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	newest := seedPost(t, db, models.ContentPost{
		Title: "newest unpinned", Kind: models.ContentKindAnnouncement,
		TargetSection: models.SectionHome, TargetTribe: models.TribeAll,
		Active: true, CreatedAt: base.Add(48 * time.Hour),
	})
	pinnedOld := seedPost(t, db, models.ContentPost{
		Title: "old but pinned", Kind: models.ContentKindAnnouncement,
		TargetSection: models.SectionHome, TargetTribe: models.TribeAll,
		Active: true, Pinned: true, CreatedAt: base,
	})

	posts, err := svc.Resolve(ctx, models.SectionHome, models.TribeRed, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, pinnedOld.ID, posts[0].ID, "pinned sorts first regardless of timestamps")
	assert.Equal(t, newest.ID, posts[1].ID)
}

func TestResolveRecencyWithinPartition(t *testing.T) {
	svc, db := newTargetingFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	older := seedPost(t, db, models.ContentPost{
		Title: "older", Kind: models.ContentKindAnnouncement,
		TargetSection: models.SectionHome, TargetTribe: models.TribeAll,
		Active: true, CreatedAt: base,
	})
	newer := seedPost(t, db, models.ContentPost{
		Title: "newer", Kind: models.ContentKindAnnouncement,
		TargetSection: models.SectionHome, TargetTribe: models.TribeAll,
		Active: true, CreatedAt: base.Add(time.Hour),
	})

	posts, err := svc.Resolve(ctx, models.SectionHome, models.TribeRed, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)
}

func TestResolveDeterminism(t *testing.T) {
	svc, db := newTargetingFixture(t)
	ctx := context.Background()

	// Identical timestamps force the id tiebreak.
	ts := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedPost(t, db, models.ContentPost{
			Title: "tied", Kind: models.ContentKindQuote,
			TargetSection: models.SectionHome, TargetTribe: models.TribeAll,
			Active: true, CreatedAt: ts,
		})
	}

	first, err := svc.Resolve(ctx, models.SectionHome, models.TribeBlue, 0)
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, models.SectionHome, models.TribeBlue, 0)
	require.NoError(t, err)

	require.Len(t, first, 5)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestResolveLimit(t *testing.T) {
	svc, db := newTargetingFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		seedPost(t, db, models.ContentPost{
			Title: "post", Kind: models.ContentKindQuote,
			TargetSection: models.SectionHome, TargetTribe: models.TribeAll,
			Active: true, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	posts, err := svc.Resolve(ctx, models.SectionHome, models.TribeRed, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// Truncation happens after ordering: the two newest survive.
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))
}

func TestResolveRejectsUnknownSection(t *testing.T) {
	svc, _ := newTargetingFixture(t)

	_, err := svc.Resolve(context.Background(), "backstage", models.TribeRed, 0)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeValidation))
}
