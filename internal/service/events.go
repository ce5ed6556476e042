package service

import (
	"context"
	"log/slog"

	"socialmedia/internal/queue"
)

// publishEvent emits event after the owning transaction committed. Failures
// are logged and never surface to the caller.
func publishEvent(ctx context.Context, publisher queue.Publisher, event queue.Event) {
	if publisher == nil {
		return
	}

	msgID, err := publisher.Publish(ctx, queue.StreamAccounts, event)
	if err != nil {
		slog.WarnContext(ctx, "Failed to publish account event",
			slog.String("type", event.Type),
			slog.Any("error", err),
		)
		return
	}

	slog.DebugContext(ctx, "Published account event",
		slog.String("type", event.Type),
		slog.String("msg_id", msgID),
	)
}
