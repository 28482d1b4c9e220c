package activity

import (
	"context"

	"tigerlee/internal/domain/notification"
)

// Store records published events for the admin activity list.
type Store interface {
	Save(ctx context.Context, event notification.Event) error
	Recent(ctx context.Context, limit int) ([]notification.Event, error)
}
