package orchestrators

import (
	"context"
	"errors"
	"sync"
	"time"

	emailAdapter "tigerlee/internal/adapters/email"
	"tigerlee/internal/domain/blockeddate"
	"tigerlee/internal/domain/notification"
	"tigerlee/internal/domain/schedulepdf"
)

var fixedTime = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// mockBlockedStore implements BlockedDateStoreForOrchestrator for testing.
type mockBlockedStore struct {
	set     blockeddate.Set
	saves   int
	loadErr error
	saveErr error
}

func (m *mockBlockedStore) Load(context.Context) (blockeddate.Set, error) {
	if m.loadErr != nil {
		return blockeddate.Set{}, m.loadErr
	}
	return blockeddate.NewSet(m.set.Dates()...), nil
}

func (m *mockBlockedStore) Save(_ context.Context, set blockeddate.Set) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.set = set
	return nil
}

// mockScheduleStore implements ScheduleStoreForOrchestrator for testing.
type mockScheduleStore struct {
	doc     *schedulepdf.Document
	deletes int
	saveErr error
}

func (m *mockScheduleStore) Save(_ context.Context, doc schedulepdf.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.doc = &doc
	return nil
}

func (m *mockScheduleStore) Delete(context.Context) error {
	m.deletes++
	m.doc = nil
	return nil
}

// recordingPublisher implements EventPublisher for testing.
type recordingPublisher struct {
	events []notification.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e notification.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

// recordingSender implements email.Sender for testing.
type recordingSender struct {
	mu   sync.Mutex
	sent []emailAdapter.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg emailAdapter.Message) (emailAdapter.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return emailAdapter.Receipt{}, s.err
	}
	s.sent = append(s.sent, msg)
	return emailAdapter.Receipt{MessageID: "m1", SentAt: fixedTime}, nil
}

// failingReader fails on first read.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk unplugged") }

// countingReader records whether it was read.
type countingReader struct{ reads int }

func (r *countingReader) Read([]byte) (int, error) {
	r.reads++
	return 0, errors.New("should not be read")
}
