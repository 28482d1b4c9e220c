package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"tigerlee/internal/adapters/http/middleware"
	"tigerlee/internal/adapters/http/perf"
	activityStore "tigerlee/internal/adapters/storage/activity"
	blockedDateStore "tigerlee/internal/adapters/storage/blockeddate"
	scheduleStore "tigerlee/internal/adapters/storage/schedulepdf"
	"tigerlee/internal/application/broadcast"
	"tigerlee/internal/domain/admin"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// defaultScheduleFile is served until an admin uploads a schedule.
const defaultScheduleFile = "static/class-schedule.pdf"

// Stores holds all storage dependencies.
type Stores struct {
	BlockedDates blockedDateStore.Store
	Schedule     scheduleStore.Store
	Activity     activityStore.Store // optional
}

// Options carries the security and site settings resolved from config.
type Options struct {
	CSRFKey          []byte
	CookieHashKey    []byte
	CookieBlockKey   []byte
	Secure           bool
	TrustedOrigins   []string
	Credential       admin.Credential
	BookingRecipient string
	RateLimitRPS     float64
	RateLimitBurst   int
	SlowRequest      time.Duration

	// Limiter is built from RateLimitRPS and RateLimitBurst when nil.
	Limiter *middleware.RateLimiter
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session codec (set by NewMux)
var sessions *middleware.SessionCodec

// Global change-notification hub (set by NewMux)
var hub *broadcast.Hub

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// credential is the admin login check; the stub unless a hash is configured.
var credential admin.Credential = admin.NewStubCredential()

// bookingRecipient receives composed booking drafts.
var bookingRecipient string

// defaultSchedule holds the bundled PDF.
var defaultSchedule []byte

// loadDefaultSchedule reads the bundled PDF from the embedded static files.
func loadDefaultSchedule() []byte {
	data, err := fs.ReadFile(staticFS, defaultScheduleFile)
	if err != nil {
		slog.Error("default_schedule_missing", "error", err)
		return nil
	}
	return data
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, h *broadcast.Hub, collector *perf.Collector, opts Options) http.Handler {
	stores = s
	hub = h
	perfCollector = collector
	sessions = middleware.NewSessionCodec(opts.CookieHashKey, opts.CookieBlockKey, opts.Secure)
	if opts.Credential != nil {
		credential = opts.Credential
	}
	bookingRecipient = opts.BookingRecipient

	defaultSchedule = loadDefaultSchedule()

	mux := http.NewServeMux()
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	registerRoutes(mux)

	limiter := opts.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)
	}

	// Apply middleware: Timing -> RateLimit -> Auth -> LimitBody -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey, opts.Secure, opts.TrustedOrigins),
		middleware.LimitBody(map[string]int64{"POST /admin/schedule": maxUploadBody}),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, opts.SlowRequest),
	)
}
