package kv

import (
	"context"
	"log/slog"
	"time"

	"tigerlee/internal/adapters/http/perf"
)

// Timed wraps any Store and records each call to the perf collector.
type Timed struct {
	next      Store
	backend   string
	collector *perf.Collector
}

// NewTimed instruments next. backend labels samples, e.g. "redis".
func NewTimed(next Store, backend string, collector *perf.Collector) *Timed {
	return &Timed{next: next, backend: backend, collector: collector}
}

func (t *Timed) observe(op string, start time.Time, err error) {
	ms := float64(time.Since(start).Microseconds()) / 1000.0
	name := "kv." + t.backend + "." + op
	if err != nil && err != ErrNotFound {
		slog.Warn("kv_error", "op", name, "error", err)
	}
	if t.collector != nil {
		t.collector.Record(perf.Sample{Kind: perf.KindStore, Name: name, DurationMs: ms, At: start})
	}
}

// Get delegates to the wrapped store.
func (t *Timed) Get(ctx context.Context, key string) (v string, err error) {
	defer func(start time.Time) { t.observe("Get", start, err) }(time.Now())
	return t.next.Get(ctx, key)
}

// Set delegates to the wrapped store.
func (t *Timed) Set(ctx context.Context, key, value string) (err error) {
	defer func(start time.Time) { t.observe("Set", start, err) }(time.Now())
	return t.next.Set(ctx, key, value)
}

// Delete delegates to the wrapped store.
func (t *Timed) Delete(ctx context.Context, key string) (err error) {
	defer func(start time.Time) { t.observe("Delete", start, err) }(time.Now())
	return t.next.Delete(ctx, key)
}
