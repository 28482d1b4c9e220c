package web

import (
	"net/http"

	"tigerlee/internal/adapters/http/middleware"
)

// registerRoutes maps every route onto the mux.
func registerRoutes(mux *http.ServeMux) {
	// Pages
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /about", handleAbout)
	mux.HandleFunc("GET /programs", handlePrograms)
	mux.HandleFunc("GET /education", handleEducation)
	mux.HandleFunc("GET /faq", handleFAQ)
	mux.HandleFunc("GET /book", handleBookPage)
	mux.HandleFunc("GET /admin", handleAdminPage)
	mux.HandleFunc("GET /schedule.pdf", handleSchedulePDF)
	mux.HandleFunc("GET /healthz", handleHealth)

	// Booking
	mux.HandleFunc("GET /api/availability", handleAvailability)
	mux.HandleFunc("GET /api/calendar", handleCalendar)
	mux.HandleFunc("POST /book", handleSubmitBooking)
	mux.HandleFunc("GET /api/events", handleEvents)

	// Admin
	mux.HandleFunc("POST /admin/login", handleAdminLogin)
	mux.HandleFunc("POST /admin/logout", handleAdminLogout)
	mux.HandleFunc("GET /api/blocked-dates", handleListBlockedDates)
	mux.Handle("POST /api/blocked-dates", middleware.RequireAdmin(http.HandlerFunc(handleBlockDate)))
	mux.Handle("DELETE /api/blocked-dates", middleware.RequireAdmin(http.HandlerFunc(handleUnblockDate)))
	mux.Handle("POST /admin/blocked-dates", middleware.RequireAdmin(http.HandlerFunc(handleBlockDate)))
	mux.Handle("POST /admin/blocked-dates/remove", middleware.RequireAdmin(http.HandlerFunc(handleUnblockDate)))
	mux.Handle("POST /admin/schedule", middleware.RequireAdmin(http.HandlerFunc(handleUploadSchedule)))
	mux.Handle("POST /admin/schedule/reset", middleware.RequireAdmin(http.HandlerFunc(handleResetSchedule)))
	mux.Handle("GET /api/admin/perf", middleware.RequireAdmin(http.HandlerFunc(handlePerf)))
}
