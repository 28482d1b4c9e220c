package projections

import (
	"context"

	"tigerlee/internal/domain/availability"
	"tigerlee/internal/domain/blockeddate"
)

// BlockedDateStoreForProjection defines the store interface needed by the booking projections.
type BlockedDateStoreForProjection interface {
	Load(ctx context.Context) (blockeddate.Set, error)
}

// GetAvailabilityInput carries the selected date and, optionally, the currently selected time.
type GetAvailabilityInput struct {
	Date string
	Time string
}

// GetAvailabilityDeps holds dependencies for QueryGetAvailability.
type GetAvailabilityDeps struct {
	BlockedDates BlockedDateStoreForProjection
}

// AvailabilityView is the availability of one date plus the time selection to keep.
type AvailabilityView struct {
	availability.DayAvailability
	Time  string `json:"time"`
	Label string `json:"label,omitempty"`
}

// QueryGetAvailability computes availability against the current blocked set.
// PRE: input.Date is YYYY-MM-DD
// POST: Time is empty unless it is one of Slots
func QueryGetAvailability(ctx context.Context, input GetAvailabilityInput, deps GetAvailabilityDeps) (AvailabilityView, error) {
	blocked, err := deps.BlockedDates.Load(ctx)
	if err != nil {
		return AvailabilityView{}, err
	}
	a, err := availability.Compute(input.Date, blocked)
	if err != nil {
		return AvailabilityView{}, err
	}
	d, _ := availability.ParseDate(input.Date)
	return AvailabilityView{
		DayAvailability: a,
		Time:            availability.ReconcileTime(input.Time, a),
		Label:           d.Format("Monday, Jan 2"),
	}, nil
}
