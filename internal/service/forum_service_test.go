package service

import (
	"context"
	"errors"
	"testing"

	"tribewave/internal/models"
	"tribewave/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLimiter answers every Allow call with a fixed verdict.
type stubLimiter struct {
	allow bool
	err   error
	calls int
}

func (l *stubLimiter) Allow(_ context.Context, _ string, _ string) (bool, error) {
	l.calls++
	return l.allow, l.err
}

func newForumService(t *testing.T, limiter *stubLimiter) *ForumService {
	t.Helper()
	db := setupTestDB(t)
	if limiter == nil {
		return NewForumService(repository.NewForumRepository(db), nil, noopNotifier())
	}
	return NewForumService(repository.NewForumRepository(db), limiter, noopNotifier())
}

func forumInput() CreateForumPostInput {
	return CreateForumPostInput{
		Title:       "Setlist predictions",
		Body:        "Calling the opener now.",
		AuthorName:  "Sam",
		AuthorEmail: "sam@example.com",
		Category:    "general",
	}
}

func TestCommunityPostStartsPending(t *testing.T) {
	svc := newForumService(t, nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, forumInput())
	require.NoError(t, err)
	assert.False(t, post.Active)
	assert.False(t, post.Official)
	assert.Equal(t, models.TribeMain, post.TargetTribe, "empty scope defaults to the main board")

	board, err := svc.Board(ctx, models.TribeMain)
	require.NoError(t, err)
	assert.Empty(t, board, "pending posts stay off the board")

	queue, err := svc.PendingQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, post.ID, queue[0].ID)
}

func TestAdminPostIsActiveAndOfficial(t *testing.T) {
	svc := newForumService(t, nil)
	ctx := context.Background()

	in := forumInput()
	in.Admin = true
	post, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, post.Active)
	assert.True(t, post.Official)

	board, err := svc.Board(ctx, models.TribeMain)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, post.ID, board[0].ID)
}

func TestForumScopeAndCategoryValidation(t *testing.T) {
	svc := newForumService(t, nil)
	ctx := context.Background()

	in := forumInput()
	in.TargetTribe = "purple"
	_, err := svc.Create(ctx, in)
	assert.True(t, models.HasCode(err, models.CodeValidation))

	in = forumInput()
	in.TargetTribe = models.TribeRed
	in.Category = "art-share" // yellow's category, not red's
	_, err = svc.Create(ctx, in)
	assert.True(t, models.HasCode(err, models.CodeValidation))

	in.Category = "fan-theories"
	post, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.TribeRed, post.TargetTribe)
}

func TestActivateIsIdempotent(t *testing.T) {
	svc := newForumService(t, nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, forumInput())
	require.NoError(t, err)

	activated, err := svc.Activate(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, activated.Active)

	again, err := svc.Activate(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, again.Active)

	_, err = svc.Activate(ctx, 999)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestBoardScopesAreSeparate(t *testing.T) {
	svc := newForumService(t, nil)
	ctx := context.Background()

	in := forumInput()
	in.Admin = true
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	in = forumInput()
	in.Admin = true
	in.TargetTribe = models.TribeBlue
	in.Category = "deep-cuts"
	bluePost, err := svc.Create(ctx, in)
	require.NoError(t, err)

	blueBoard, err := svc.Board(ctx, models.TribeBlue)
	require.NoError(t, err)
	require.Len(t, blueBoard, 1)
	assert.Equal(t, bluePost.ID, blueBoard[0].ID)
}

func TestRateLimitBlocksCommunityPosts(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	svc := newForumService(t, limiter)

	_, err := svc.Create(context.Background(), forumInput())
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeValidation))
	assert.Equal(t, 1, limiter.calls)
}

func TestRateLimitSkipsAdmins(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	svc := newForumService(t, limiter)

	in := forumInput()
	in.Admin = true
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Zero(t, limiter.calls)
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &stubLimiter{allow: false, err: errors.New("redis down")}
	svc := newForumService(t, limiter)

	post, err := svc.Create(context.Background(), forumInput())
	require.NoError(t, err, "limiter errors must not block posting")
	assert.NotZero(t, post.ID)
}

func TestForumDelete(t *testing.T) {
	svc := newForumService(t, nil)
	ctx := context.Background()

	post, err := svc.Create(ctx, forumInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, post.ID))
	queue, err := svc.PendingQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, queue)

	require.NoError(t, svc.Delete(ctx, post.ID))
}
