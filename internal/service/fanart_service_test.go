package service

import (
	"context"
	"testing"
	"time"

	"tribewave/internal/models"
	"tribewave/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFanArtService(t *testing.T) *FanArtService {
	t.Helper()
	db := setupTestDB(t)
	return NewFanArtService(repository.NewFanArtRepository(db), noopNotifier())
}

func submitArt(t *testing.T, svc *FanArtService) *models.FanArtSubmission {
	t.Helper()
	submission, err := svc.Submit(context.Background(), SubmitFanArtInput{
		Title:        "Neon tribe mural",
		ArtistName:   "Kai",
		ContactEmail: "kai@example.com",
		ImageRef:     "/media/mural.png",
	})
	require.NoError(t, err)
	return submission
}

func TestSubmitValidation(t *testing.T) {
	svc := newFanArtService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitFanArtInput{ArtistName: "Kai", ContactEmail: "kai@example.com", ImageRef: "/media/x.png"})
	assert.True(t, models.HasCode(err, models.CodeValidation), "missing title")

	_, err = svc.Submit(ctx, SubmitFanArtInput{Title: "t", ArtistName: "Kai", ContactEmail: "kai@example.com"})
	assert.True(t, models.HasCode(err, models.CodeValidation), "missing image")
}

func TestApproveIsIdempotent(t *testing.T) {
	svc := newFanArtService(t)
	ctx := context.Background()
	submission := submitArt(t, svc)

	approved, err := svc.Approve(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FanArtStateApproved, approved.State)
	require.NotNil(t, approved.ApprovedAt)
	firstStamp := *approved.ApprovedAt

	again, err := svc.Approve(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FanArtStateApproved, again.State)
	require.NotNil(t, again.ApprovedAt)
	assert.WithinDuration(t, firstStamp, *again.ApprovedAt, time.Second,
		"re-approval keeps the original approval stamp")
}

func TestApproveUnknownID(t *testing.T) {
	svc := newFanArtService(t)

	_, err := svc.Approve(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestRejectRemovesRecord(t *testing.T) {
	svc := newFanArtService(t)
	ctx := context.Background()
	submission := submitArt(t, svc)

	require.NoError(t, svc.Reject(ctx, submission.ID))

	_, err := svc.Approve(ctx, submission.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound), "rejected record is gone")

	// Rejecting again is a no-op, not an error.
	require.NoError(t, svc.Reject(ctx, submission.ID))
}

func TestRejectApprovedIsInvalid(t *testing.T) {
	svc := newFanArtService(t)
	ctx := context.Background()
	submission := submitArt(t, svc)

	_, err := svc.Approve(ctx, submission.ID)
	require.NoError(t, err)

	err = svc.Reject(ctx, submission.ID)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeInvalidTransition))
}

func TestFeaturedGatedOnApproval(t *testing.T) {
	svc := newFanArtService(t)
	ctx := context.Background()
	submission := submitArt(t, svc)

	// Featuring a pending submission changes nothing.
	unchanged, err := svc.ToggleFeatured(ctx, submission.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.Featured)

	_, err = svc.Approve(ctx, submission.ID)
	require.NoError(t, err)

	featured, err := svc.ToggleFeatured(ctx, submission.ID)
	require.NoError(t, err)
	assert.True(t, featured.Featured)
}

func TestGalleryListsOnlyApproved(t *testing.T) {
	svc := newFanArtService(t)
	ctx := context.Background()

	pending := submitArt(t, svc)
	approved := submitArt(t, svc)
	_, err := svc.Approve(ctx, approved.ID)
	require.NoError(t, err)

	gallery, err := svc.Gallery(ctx)
	require.NoError(t, err)
	require.Len(t, gallery, 1)
	assert.Equal(t, approved.ID, gallery[0].ID)

	queue, err := svc.PendingQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)
}
