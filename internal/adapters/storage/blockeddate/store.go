package blockeddate

import (
	"context"

	domain "tigerlee/internal/domain/blockeddate"
)

// Key is the storage key holding the JSON array of blocked dates.
const Key = "tigerlee_blocked_dates"

// Store persists the blocked-date set.
type Store interface {
	Load(ctx context.Context) (domain.Set, error)
	Save(ctx context.Context, set domain.Set) error
}
