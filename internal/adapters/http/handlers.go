package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"tigerlee/internal/adapters/http/middleware"
	"tigerlee/internal/application/orchestrators"
	"tigerlee/internal/domain/content"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// publisher returns the hub as an EventPublisher, or nil when none is wired.
func publisher() orchestrators.EventPublisher {
	if hub == nil {
		return nil
	}
	return hub
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// internalJSONError is internalError for JSON callers.
func internalJSONError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeJSONError(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// isJSONRequest reports whether the body is JSON.
func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// wantsJSON reports whether the caller asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return isJSONRequest(r) || strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("json_encode_failed", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// pageData is the envelope every template receives.
type pageData struct {
	Title string
	Path  string
	Data  any
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName, title string, data any) {
	isAdmin := middleware.IsAdmin(r.Context())

	funcMap := template.FuncMap{
		"isAdmin":        func() bool { return isAdmin },
		"csrfToken":      func() string { return csrf.Token(r) },
		"renderMarkdown": renderMarkdown,
		"nav":            func() []content.NavItem { return content.Nav },
		"footerLinks":    func() []content.NavItem { return content.FooterLinks },
		"year":           func() int { return timeNow().Year() },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, pageData{Title: title, Path: r.URL.Path, Data: data}); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// handleHome renders the landing page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "home.html", "Tiger Lee's Taekwondo", struct {
		Programs     []content.Program
		Testimonials []content.Testimonial
	}{content.Programs, content.Testimonials})
}

// handleAbout renders the instructors page.
func handleAbout(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "about.html", "About Us", content.Instructors)
}

// handlePrograms renders every program.
func handlePrograms(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "programs.html", "Programs", content.Programs)
}

// handleEducation renders the benefits sections.
func handleEducation(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "education.html", "Education", content.Education)
}

// handleFAQ renders the questions page.
func handleFAQ(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "faq.html", "FAQ", content.FAQs)
}

// handleHealth reports liveness.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
