package projections

import (
	"context"
	"errors"
	"time"

	scheduleStore "tigerlee/internal/adapters/storage/schedulepdf"
	"tigerlee/internal/domain/blockeddate"
	"tigerlee/internal/domain/notification"
	"tigerlee/internal/domain/schedulepdf"
)

type mockBlockedStore struct {
	set blockeddate.Set
	err error
}

func (m mockBlockedStore) Load(context.Context) (blockeddate.Set, error) { return m.set, m.err }

type mockScheduleStore struct {
	doc *schedulepdf.Document
	err error
}

func (m mockScheduleStore) Load(context.Context) (schedulepdf.Document, error) {
	if m.err != nil {
		return schedulepdf.Document{}, m.err
	}
	if m.doc == nil {
		return schedulepdf.Document{}, scheduleStore.ErrNotFound
	}
	return *m.doc, nil
}

type mockActivityStore struct {
	events []notification.Event
}

func (m mockActivityStore) Recent(_ context.Context, limit int) ([]notification.Event, error) {
	if len(m.events) > limit {
		return m.events[:limit], nil
	}
	return m.events, nil
}

var errStore = errors.New("store unavailable")

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 15, 30, 0, 0, time.UTC) }
}
