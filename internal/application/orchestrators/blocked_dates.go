package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"tigerlee/internal/domain/blockeddate"
	"tigerlee/internal/domain/notification"
)

// BlockedDateStoreForOrchestrator defines the store interface needed by block/unblock.
type BlockedDateStoreForOrchestrator interface {
	Load(ctx context.Context) (blockeddate.Set, error)
	Save(ctx context.Context, set blockeddate.Set) error
}

// BlockedDateDeps holds dependencies for ExecuteBlockDate and ExecuteUnblockDate.
type BlockedDateDeps struct {
	Store      BlockedDateStoreForOrchestrator
	Publisher  EventPublisher
	GenerateID func() string
	Now        func() time.Time
}

// BlockDateInput carries input for blocking or unblocking a date.
type BlockDateInput struct {
	Date string
}

// ExecuteBlockDate closes a date to bookings.
// PRE: input.Date is YYYY-MM-DD
// POST: the stored set contains Date; the full set is written back only
// when Date was not already present
func ExecuteBlockDate(ctx context.Context, input BlockDateInput, deps BlockedDateDeps) (blockeddate.Set, error) {
	if err := blockeddate.ValidateDate(input.Date); err != nil {
		return blockeddate.Set{}, err
	}
	set, err := deps.Store.Load(ctx)
	if err != nil {
		return blockeddate.Set{}, err
	}
	if !set.Add(input.Date) {
		slog.Info("admin_event", "event", "date_blocked", "date", input.Date, "changed", false)
		return set, nil
	}
	if err := deps.Store.Save(ctx, set); err != nil {
		return blockeddate.Set{}, err
	}
	slog.Info("admin_event", "event", "date_blocked", "date", input.Date, "changed", true)
	publishChange(ctx, deps.Publisher, notification.KindBlockedDatesChanged, "blocked "+input.Date, deps.GenerateID, deps.Now)
	return set, nil
}

// ExecuteUnblockDate reopens a date.
// Any string is accepted so that malformed entries can be removed.
// POST: the stored set does not contain Date; the full set is written back
// even when nothing was removed
func ExecuteUnblockDate(ctx context.Context, input BlockDateInput, deps BlockedDateDeps) (blockeddate.Set, error) {
	if input.Date == "" {
		return blockeddate.Set{}, blockeddate.ErrEmptyDate
	}
	set, err := deps.Store.Load(ctx)
	if err != nil {
		return blockeddate.Set{}, err
	}
	removed := set.Remove(input.Date)
	if err := deps.Store.Save(ctx, set); err != nil {
		return blockeddate.Set{}, err
	}
	slog.Info("admin_event", "event", "date_unblocked", "date", input.Date, "changed", removed)
	if removed {
		publishChange(ctx, deps.Publisher, notification.KindBlockedDatesChanged, "unblocked "+input.Date, deps.GenerateID, deps.Now)
	}
	return set, nil
}
