// Package notifications publishes core events and content-change signals.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"runtime/debug"

	"tribewave/internal/models"

	"github.com/redis/go-redis/v9"
)

// Event types emitted by the core.
const (
	EventTribeJoined          = "tribe_joined"
	EventContentPublished     = "content_published"
	EventFanArtApproved       = "fanart_approved"
	EventBookingStatusChanged = "booking_status_changed"
	EventForumPostActivated   = "forum_post_activated"
)

// Event is the structured payload delivered to the analytics sink.
type Event struct {
	Type    string                 `json:"type"`
	Subject uint                   `json:"subject,omitempty"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Notifier provides helpers to publish events into Redis channels. All
// publishing is fire-and-forget: failures are logged and never propagated,
// so a sink outage cannot fail the originating operation.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client disables publishing.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishEvent sends a structured event to the analytics/notification sink.
func (n *Notifier) PublishEvent(ctx context.Context, event Event) {
	if n.rdb == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.WarnContext(ctx, "event marshal failed", "type", event.Type, "err", err)
		return
	}
	if err := n.rdb.Publish(ctx, "events:core", payload).Err(); err != nil {
		slog.WarnContext(ctx, "event publish failed", "type", event.Type, "err", err)
	}
}

// PublishContentChange signals that content targeting the given section
// changed, so presentation layers can refresh without polling.
func (n *Notifier) PublishContentChange(ctx context.Context, section models.Section) {
	if n.rdb == nil {
		return
	}
	if err := n.rdb.Publish(ctx, ContentChannel(section), string(section)).Err(); err != nil {
		slog.WarnContext(ctx, "content change publish failed", "section", string(section), "err", err)
	}
}

// StartContentSubscriber subscribes to the content-change pattern and calls
// onChange for each signal. onChange receives the channel name and section.
func (n *Notifier) StartContentSubscriber(
	ctx context.Context, onChange func(channel string, section string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "content:section:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in ContentSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onChange(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// ContentChannel derives the Redis channel name for a section's change feed.
func ContentChannel(section models.Section) string {
	return "content:section:" + string(section)
}
