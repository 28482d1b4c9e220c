package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tigerlee/internal/adapters/http/perf"
)

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code != 0 {
			w.WriteHeader(code)
		}
		w.Write([]byte("ok"))
	})
}

// captureLogs sends slog output to a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// TestTiming_RecordsBookingRoutes checks the sample name and status for the site's routes.
func TestTiming_RecordsBookingRoutes(t *testing.T) {
	tests := []struct {
		method     string
		path       string
		code       int
		wantName   string
		wantStatus int
	}{
		{"GET", "/api/availability", 0, "GET /api/availability", http.StatusOK},
		{"POST", "/book", http.StatusSeeOther, "POST /book", http.StatusSeeOther},
		{"POST", "/api/blocked-dates", http.StatusUnauthorized, "POST /api/blocked-dates", http.StatusUnauthorized},
		{"POST", "/admin/schedule", http.StatusRequestEntityTooLarge, "POST /admin/schedule", http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			collector := perf.NewCollector(8)
			rr := httptest.NewRecorder()
			Timing(collector, 0)(statusHandler(tt.code)).ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
			if len(snap.SlowestRoutes) != 1 || snap.SlowestRoutes[0].Name != tt.wantName {
				t.Fatalf("SlowestRoutes = %+v, want one entry %q", snap.SlowestRoutes, tt.wantName)
			}
			if snap.SlowestRoutes[0].AvgMs < 0 {
				t.Errorf("AvgMs = %v, want >= 0", snap.SlowestRoutes[0].AvgMs)
			}
		})
	}
}

// TestTiming_SkipsStaticAssets checks that stylesheet and script requests are not timed.
func TestTiming_SkipsStaticAssets(t *testing.T) {
	collector := perf.NewCollector(8)
	handler := Timing(collector, 0)(statusHandler(0))
	for _, p := range []string{"/static/style.css", "/static/app.js", "/static/class-schedule.pdf"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", p, nil))
		if rr.Header().Get(RequestIDHeader) != "" {
			t.Errorf("%s: static response tagged with a request ID", p)
		}
	}
	if n := collector.TotalRecorded(); n != 0 {
		t.Errorf("TotalRecorded = %d, want 0", n)
	}
}

// TestTiming_NilCollector checks that the middleware runs without perf collection.
func TestTiming_NilCollector(t *testing.T) {
	rr := httptest.NewRecorder()
	Timing(nil, 0)(statusHandler(http.StatusAccepted)).ServeHTTP(rr, httptest.NewRequest("GET", "/faq", nil))
	if rr.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rr.Code)
	}
}

// TestTiming_SlowRequestWarning checks the threshold and the event stream exemption.
func TestTiming_SlowRequestWarning(t *testing.T) {
	logs := captureLogs(t)
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Millisecond)
	})
	handler := Timing(nil, time.Millisecond)(slow)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/book", nil))
	if !strings.Contains(logs.String(), "msg=slow_request") || !strings.Contains(logs.String(), "path=/book") {
		t.Errorf("no slow_request warning for /book:\n%s", logs)
	}

	logs.Reset()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/events", nil))
	if strings.Contains(logs.String(), "slow_request") {
		t.Errorf("event stream logged as slow:\n%s", logs)
	}
}

// TestTiming_PanicStillRecorded checks that the deferred sample runs when a handler panics.
func TestTiming_PanicStillRecorded(t *testing.T) {
	collector := perf.NewCollector(8)
	handler := Timing(collector, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("template exploded")
	}))

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected the panic to propagate")
		}
		if n := collector.TotalRecorded(); n != 1 {
			t.Errorf("TotalRecorded = %d, want 1", n)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/programs", nil))
}

// TestTiming_PooledWriterResetsStatus checks that a 500 does not carry over to the next request.
func TestTiming_PooledWriterResetsStatus(t *testing.T) {
	collector := perf.NewCollector(8)
	Timing(collector, 0)(statusHandler(http.StatusInternalServerError)).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/calendar", nil))

	Timing(collector, 0)(statusHandler(0)).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/about", nil))

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if snap.Requests != 2 || snap.ServerErrors != 1 {
		t.Errorf("Requests = %d, ServerErrors = %d, want 2 and 1", snap.Requests, snap.ServerErrors)
	}
}

// TestTiming_SetsRequestID checks that each response carries a distinct ID.
func TestTiming_SetsRequestID(t *testing.T) {
	handler := Timing(nil, 0)(statusHandler(0))

	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		id := rr.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatal("missing request ID header")
		}
		ids[id] = true
	}
	if len(ids) != 3 {
		t.Errorf("got %d distinct IDs, want 3", len(ids))
	}
}

// TestTiming_FlushThroughWrapper checks that the event stream can flush through the status wrapper.
func TestTiming_FlushThroughWrapper(t *testing.T) {
	handler := Timing(nil, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(": connected\n\n"))
		if err := http.NewResponseController(w).Flush(); err != nil {
			t.Errorf("Flush: %v", err)
		}
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/events", nil))
	if !rr.Flushed {
		t.Error("expected recorder to be flushed")
	}
}

// BenchmarkTiming measures per-request overhead on the availability endpoint.
func BenchmarkTiming(b *testing.B) {
	collector := perf.NewCollector(perf.DefaultRingSize)
	handler := Timing(collector, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/availability?date=2024-06-03", nil))
		}
	})
}
