package projections

import (
	"context"
	"errors"

	scheduleStore "tigerlee/internal/adapters/storage/schedulepdf"
	"tigerlee/internal/domain/notification"
)

// ActivityStoreForProjection defines the store interface needed by QueryGetAdminDashboard.
type ActivityStoreForProjection interface {
	Recent(ctx context.Context, limit int) ([]notification.Event, error)
}

// GetAdminDashboardDeps holds dependencies for QueryGetAdminDashboard.
type GetAdminDashboardDeps struct {
	BlockedDates BlockedDateStoreForProjection
	Schedule     ScheduleStoreForProjection
	Activity     ActivityStoreForProjection // nil hides the activity list
	StubLogin    bool
}

// AdminDashboard is the state shown on the admin page.
type AdminDashboard struct {
	BlockedDates      []string
	HasCustomSchedule bool
	Recent            []notification.Event
	StubLogin         bool
}

// recentLimit bounds the activity list.
const recentLimit = 10

// QueryGetAdminDashboard gathers the admin page state.
func QueryGetAdminDashboard(ctx context.Context, deps GetAdminDashboardDeps) (AdminDashboard, error) {
	blocked, err := deps.BlockedDates.Load(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}
	out := AdminDashboard{BlockedDates: blocked.Dates(), StubLogin: deps.StubLogin}

	_, err = deps.Schedule.Load(ctx)
	switch {
	case err == nil:
		out.HasCustomSchedule = true
	case !errors.Is(err, scheduleStore.ErrNotFound):
		return AdminDashboard{}, err
	}

	if deps.Activity != nil {
		out.Recent, err = deps.Activity.Recent(ctx, recentLimit)
		if err != nil {
			return AdminDashboard{}, err
		}
	}
	return out, nil
}
