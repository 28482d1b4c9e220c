package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/securecookie"

	"tigerlee/internal/adapters/http/middleware"
	"tigerlee/internal/adapters/http/perf"
	blockedDateStore "tigerlee/internal/adapters/storage/blockeddate"
	"tigerlee/internal/adapters/storage/kv"
	scheduleStore "tigerlee/internal/adapters/storage/schedulepdf"
	"tigerlee/internal/application/broadcast"
	"tigerlee/internal/domain/admin"
	"tigerlee/internal/domain/blockeddate"
	"tigerlee/internal/domain/notification"
)

// fixedNow is Monday 2024-06-03.
var fixedNow = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

const testRecipient = "bookings@example.com"

// newTestStores wires memory-backed stores and resets the package globals.
func newTestStores(t *testing.T) *Stores {
	t.Helper()
	mem := kv.NewMemoryStore()
	s := &Stores{
		BlockedDates: blockedDateStore.NewKVStore(mem),
		Schedule:     scheduleStore.NewKVStore(mem),
	}
	stores = s
	hub = broadcast.NewHub()
	credential = admin.NewStubCredential()
	bookingRecipient = testRecipient
	defaultSchedule = loadDefaultSchedule()
	sessions = middleware.NewSessionCodec(securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32), false)

	prev := timeNow
	timeNow = func() time.Time { return fixedNow }
	t.Cleanup(func() { timeNow = prev })
	return s
}

// newTestServer builds the full middleware stack over memory stores.
func newTestServer(t *testing.T) (http.Handler, *Stores) {
	t.Helper()
	s := newTestStores(t)
	h := NewMux(s, hub, perf.NewCollector(64), Options{
		CSRFKey:          securecookie.GenerateRandomKey(32),
		CookieHashKey:    securecookie.GenerateRandomKey(32),
		CookieBlockKey:   securecookie.GenerateRandomKey(32),
		Credential:       admin.NewStubCredential(),
		BookingRecipient: testRecipient,
		RateLimitRPS:     1000,
		RateLimitBurst:   1000,
	})
	return h, s
}

// asAdmin attaches an admin session to the request context.
func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(middleware.ContextWithSession(req.Context(), middleware.Session{Username: "admin", IssuedAt: fixedNow}))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func blockDates(t *testing.T, s *Stores, dates ...string) {
	t.Helper()
	if err := s.BlockedDates.Save(context.Background(), blockeddate.NewSet(dates...)); err != nil {
		t.Fatalf("save blocked dates: %v", err)
	}
}

// subscribe returns a channel that receives every event published on the hub.
func subscribe(t *testing.T) *broadcast.Channel {
	t.Helper()
	ch := broadcast.NewChannel(8)
	t.Cleanup(hub.Subscribe("test", ch))
	return ch
}

func expectEvent(t *testing.T, ch *broadcast.Channel, kind string) notification.Event {
	t.Helper()
	select {
	case e := <-ch.Events():
		if e.Kind != kind {
			t.Fatalf("event kind = %q, want %q", e.Kind, kind)
		}
		return e
	default:
		t.Fatalf("no %s event published", kind)
	}
	return notification.Event{}
}

// errBlockedStore fails every call.
type errBlockedStore struct{}

func (errBlockedStore) Load(context.Context) (blockeddate.Set, error) {
	return blockeddate.Set{}, errors.New("store offline")
}

func (errBlockedStore) Save(context.Context, blockeddate.Set) error {
	return errors.New("store offline")
}
