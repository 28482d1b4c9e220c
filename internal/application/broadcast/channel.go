package broadcast

import (
	"context"
	"log/slog"
	"sync/atomic"

	"tigerlee/internal/domain/notification"
)

// Channel is a Subscriber that queues events for a single reader,
// such as one open event-stream connection.
type Channel struct {
	ch      chan notification.Event
	dropped atomic.Int64
}

// NewChannel creates a channel subscriber with the given buffer.
// PRE: size > 0
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 1
	}
	return &Channel{ch: make(chan notification.Event, size)}
}

// Events returns the receive side.
func (c *Channel) Events() <-chan notification.Event {
	return c.ch
}

// Dropped returns how many events were discarded because the buffer was full.
func (c *Channel) Dropped() int64 {
	return c.dropped.Load()
}

// Notify enqueues event without blocking. A full buffer drops the event;
// the reader only needs to know that something changed.
func (c *Channel) Notify(_ context.Context, event notification.Event) {
	select {
	case c.ch <- event:
	default:
		c.dropped.Add(1)
		slog.Debug("broadcast_event_dropped", "kind", event.Kind)
	}
}
