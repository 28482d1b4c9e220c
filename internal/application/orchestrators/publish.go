package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"tigerlee/internal/domain/notification"
)

// EventPublisher delivers change notifications to open views and staff.
type EventPublisher interface {
	Publish(ctx context.Context, event notification.Event) error
}

// publishChange builds and publishes an event. A publish failure is logged,
// never returned: the state change it describes has already been stored.
func publishChange(ctx context.Context, pub EventPublisher, kind, detail string, genID func() string, now func() time.Time) {
	if pub == nil {
		return
	}
	e := notification.Event{ID: genID(), Kind: kind, At: now(), Detail: detail}
	if err := pub.Publish(ctx, e); err != nil {
		slog.Error("publish_failed", "kind", kind, "error", err)
	}
}
