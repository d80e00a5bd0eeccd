// Package ratelimit provides sliding-window rate limiting backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether an identified actor may perform another action.
type Limiter interface {
	// Allow reports whether the action identified by (resource, id) is
	// within its window. It counts the attempt when allowed.
	Allow(ctx context.Context, resource, id string) (bool, error)
}

// SlidingWindow is a Redis sorted-set sliding window limiter.
type SlidingWindow struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewSlidingWindow builds a limiter permitting `limit` actions per `window`.
func NewSlidingWindow(rdb *redis.Client, limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{rdb: rdb, limit: limit, window: window}
}

// Allow trims entries older than the window, counts the rest, and records the
// attempt when under the limit.
func (l *SlidingWindow) Allow(ctx context.Context, resource, id string) (bool, error) {
	if l.rdb == nil {
		// No store configured: fail open, matching the request-limiter default.
		return true, nil
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)
	now := time.Now()
	cutoff := now.Add(-l.window)

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	count := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if count.Val() >= int64(l.limit) {
		return false, nil
	}

	member := fmt.Sprintf("%d:%s", now.UnixNano(), uuid.NewString())
	add := l.rdb.TxPipeline()
	add.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	add.Expire(ctx, key, l.window)
	if _, err := add.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}
