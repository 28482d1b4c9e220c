package broadcast

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"tigerlee/internal/domain/notification"
)

// Subscriber receives published events. Notify runs on the publisher's
// goroutine, so implementations must not block.
type Subscriber interface {
	Notify(ctx context.Context, event notification.Event)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(ctx context.Context, event notification.Event)

// Notify calls f.
func (f SubscriberFunc) Notify(ctx context.Context, event notification.Event) { f(ctx, event) }

// Hub fans events out to every registered subscriber.
// The zero value is not usable; call NewHub.
type Hub struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]entry
}

type entry struct {
	name string
	sub  Subscriber
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]entry)}
}

// Subscribe registers s under a diagnostic name.
// POST: s receives every event published until unsubscribe is called;
// calling unsubscribe more than once is harmless
func (h *Hub) Subscribe(name string, s Subscriber) (unsubscribe func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = entry{name: name, sub: s}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Len returns the number of current subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers event to every subscriber in registration order.
// A panicking subscriber is logged and skipped.
// PRE: event.Validate() == nil
// POST: Returns the validation error without delivering, or nil
func (h *Hub) Publish(ctx context.Context, event notification.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	h.mu.RLock()
	ids := make([]uint64, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	targets := make([]entry, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, h.subs[id])
	}
	h.mu.RUnlock()

	slog.Info("broadcast_event", "id", event.ID, "kind", event.Kind, "subscribers", len(targets))
	for _, t := range targets {
		deliver(ctx, t, event)
	}
	return nil
}

func deliver(ctx context.Context, t entry, event notification.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("broadcast_subscriber_panic", "subscriber", t.name, "kind", event.Kind, "panic", r)
		}
	}()
	t.sub.Notify(ctx, event)
}
