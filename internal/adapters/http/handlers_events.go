package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tigerlee/internal/adapters/http/perf"
	"tigerlee/internal/application/broadcast"
)

// eventBuffer is the per-connection queue; a slow client drops events
// rather than stalling the publisher.
const eventBuffer = 8

// keepAliveInterval keeps idle proxies from closing the stream.
var keepAliveInterval = 25 * time.Second

// handleEvents streams change notifications as server-sent events so open
// booking and admin views refresh without a reload.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	if hub == nil {
		http.Error(w, "event stream unavailable", http.StatusServiceUnavailable)
		return
	}
	rc := http.NewResponseController(w)
	// Long-lived response; the server's write timeout must not apply.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ch := broadcast.NewChannel(eventBuffer)
	unsubscribe := hub.Subscribe("sse-"+generateID(), ch)
	defer unsubscribe()

	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		slog.Warn("sse_flush_unsupported", "error", err)
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		case event := <-ch.Events():
			start := time.Now()
			payload, err := json.Marshal(event)
			if err != nil {
				slog.Error("sse_encode_failed", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Kind, payload); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
			if perfCollector != nil {
				perfCollector.Record(perf.Sample{
					Kind:       perf.KindEvent,
					Name:       "sse." + event.Kind,
					DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
					At:         start,
				})
			}
		}
	}
}
