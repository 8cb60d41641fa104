package cache

import (
	"context"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/events"
	"github.com/phrazzld/blog-api/internal/platform/logger"
)

// Invalidator drops cached responses affected by post lifecycle events.
type Invalidator struct {
	svc    Service
	logger *slog.Logger
}

var _ events.EventHandler = (*Invalidator)(nil)

// NewInvalidator creates an Invalidator for svc.
func NewInvalidator(svc Service, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invalidator{svc: svc, logger: logger.With(slog.String("component", "cache_invalidator"))}
}

// HandleEvent implements events.EventHandler. Every event invalidates the
// listings and the responses of the affected post.
func (i *Invalidator) HandleEvent(ctx context.Context, event *events.Event) error {
	tags := []string{TagPosts}
	if event.PostID > 0 {
		tags = append(tags, PostTag(event.PostID))
	}

	if err := i.svc.Invalidate(ctx, tags...); err != nil {
		logger.FromContextOrDefault(ctx, i.logger).Error("failed to invalidate cached responses",
			slog.String("event_type", event.Type),
			slog.Int64("post_id", event.PostID),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
