package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tigerlee/internal/adapters/http/middleware"
	"tigerlee/internal/application/orchestrators"
	"tigerlee/internal/application/projections"
	"tigerlee/internal/domain/admin"
	"tigerlee/internal/domain/blockeddate"
	"tigerlee/internal/domain/schedulepdf"
)

// multipartMemory bounds the in-memory part of a schedule upload.
const multipartMemory = 1 << 20

// maxUploadBody caps a whole schedule upload request, multipart framing included.
const maxUploadBody = schedulepdf.MaxBytes + multipartMemory

// Status codes carried back to the admin page after a form post.
const (
	statusScheduleUploaded = "schedule_uploaded"
	statusScheduleReset    = "schedule_reset"
	statusScheduleNotPDF   = "schedule_not_pdf"
	statusScheduleRead     = "schedule_read_failed"
	statusScheduleEmpty    = "schedule_empty"
	statusScheduleTooLarge = "schedule_too_large"
	statusScheduleMissing  = "schedule_missing"
	statusResetUnconfirmed = "reset_unconfirmed"
	statusDateInvalid      = "date_invalid"
)

var statusMessages = map[string]string{
	statusScheduleUploaded: "Schedule uploaded.",
	statusScheduleReset:    "Schedule reset to the default.",
	statusScheduleNotPDF:   "Please select a valid PDF file.",
	statusScheduleRead:     "The file could not be read. Please try again.",
	statusScheduleEmpty:    "The selected file is empty.",
	statusScheduleTooLarge: "The selected file is too large (10 MB maximum).",
	statusScheduleMissing:  "Please choose a file to upload.",
	statusResetUnconfirmed: "Tick the confirmation box to reset the schedule.",
	statusDateInvalid:      "Please enter a date as YYYY-MM-DD.",
}

// adminPageData backs the admin page in both gate states.
type adminPageData struct {
	Dashboard  projections.AdminDashboard
	LoginError string
	Status     string
	Message    string
	IsError    bool
	FileName   string
}

// safeNext keeps post-login redirects on this site.
func safeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

// withQuery appends key=value to a local path.
func withQuery(path, key, value string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

// handleAdminPage renders the login form or, once logged in, the dashboard.
func handleAdminPage(w http.ResponseWriter, r *http.Request) {
	data := adminPageData{}
	if r.URL.Query().Get("login") == "failed" {
		data.LoginError = admin.MsgIncorrect
	}
	if !middleware.IsAdmin(r.Context()) {
		renderTemplate(w, r, http.StatusOK, "admin.html", "Admin", data)
		return
	}

	dash, err := projections.QueryGetAdminDashboard(r.Context(), projections.GetAdminDashboardDeps{
		BlockedDates: stores.BlockedDates,
		Schedule:     stores.Schedule,
		Activity:     stores.Activity,
		StubLogin:    credential.IsStub(),
	})
	if err != nil {
		internalError(w, err)
		return
	}
	data.Dashboard = dash
	data.Status = r.URL.Query().Get("status")
	data.Message = statusMessages[data.Status]
	data.IsError = data.Status != statusScheduleUploaded && data.Status != statusScheduleReset
	data.FileName = r.URL.Query().Get("file")
	renderTemplate(w, r, http.StatusOK, "admin.html", "Admin", data)
}

// handleAdminLogin checks the submitted credential and issues the session cookie.
// The booking widget posts a password only; the admin page posts both fields.
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.AdminLoginInput
	next := "/admin"
	if isJSONRequest(r) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := strictDecode(r, &body); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		input = orchestrators.AdminLoginInput{Username: strings.TrimSpace(body.Username), Password: body.Password}
	} else {
		input.Username = strings.TrimSpace(r.FormValue("username"))
		input.Password = r.FormValue("password")
		next = safeNext(r.FormValue("next"), "/admin")
	}

	_, err := orchestrators.ExecuteAdminLogin(r.Context(), input, orchestrators.AdminLoginDeps{Credential: credential})
	if errors.Is(err, admin.ErrIncorrectCredential) {
		if wantsJSON(r) {
			writeJSONError(w, http.StatusUnauthorized, admin.MsgIncorrect)
			return
		}
		http.Redirect(w, r, withQuery(next, "login", "failed"), http.StatusSeeOther)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	if err := sessions.Issue(w, credential.Username()); err != nil {
		internalError(w, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]bool{"loggedIn": true})
		return
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// handleAdminLogout clears the session cookie.
func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	sessions.Clear(w)
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		slog.Info("auth_event", "event", "admin_logout", "username", sess.Username)
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]bool{"loggedIn": false})
		return
	}
	http.Redirect(w, r, safeNext(r.FormValue("next"), "/admin"), http.StatusSeeOther)
}

// handleListBlockedDates returns the blocked set, sorted.
func handleListBlockedDates(w http.ResponseWriter, r *http.Request) {
	set, err := stores.BlockedDates.Load(r.Context())
	if err != nil {
		internalJSONError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"dates": set.Dates()})
}

// blockedDateInput reads the date from JSON, the query string, or a form.
func blockedDateInput(r *http.Request) (orchestrators.BlockDateInput, error) {
	var input orchestrators.BlockDateInput
	if isJSONRequest(r) {
		var body struct {
			Date string `json:"date"`
		}
		if err := strictDecode(r, &body); err != nil {
			return input, err
		}
		input.Date = body.Date
	} else if d := r.URL.Query().Get("date"); d != "" {
		input.Date = d
	} else {
		input.Date = r.FormValue("date")
	}
	input.Date = strings.TrimSpace(input.Date)
	return input, nil
}

func blockedDateDeps() orchestrators.BlockedDateDeps {
	return orchestrators.BlockedDateDeps{
		Store:      stores.BlockedDates,
		Publisher:  publisher(),
		GenerateID: generateID,
		Now:        timeNow,
	}
}

// handleBlockDate adds a date to the blocked set.
func handleBlockDate(w http.ResponseWriter, r *http.Request) {
	input, err := blockedDateInput(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	set, err := orchestrators.ExecuteBlockDate(r.Context(), input, blockedDateDeps())
	respondBlockedDates(w, r, set, err)
}

// handleUnblockDate removes a date from the blocked set.
func handleUnblockDate(w http.ResponseWriter, r *http.Request) {
	input, err := blockedDateInput(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	set, err := orchestrators.ExecuteUnblockDate(r.Context(), input, blockedDateDeps())
	respondBlockedDates(w, r, set, err)
}

func respondBlockedDates(w http.ResponseWriter, r *http.Request, set blockeddate.Set, err error) {
	invalid := errors.Is(err, blockeddate.ErrInvalidDate) || errors.Is(err, blockeddate.ErrEmptyDate)
	if wantsJSON(r) || strings.HasPrefix(r.URL.Path, "/api/") {
		switch {
		case invalid:
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case err != nil:
			internalJSONError(w, err)
		default:
			writeJSON(w, http.StatusOK, map[string][]string{"dates": set.Dates()})
		}
		return
	}
	switch {
	case invalid:
		http.Redirect(w, r, "/admin?status="+statusDateInvalid, http.StatusSeeOther)
	case err != nil:
		internalError(w, err)
	default:
		http.Redirect(w, r, safeNext(r.FormValue("next"), "/admin"), http.StatusSeeOther)
	}
}

func scheduleDeps() orchestrators.ScheduleDeps {
	return orchestrators.ScheduleDeps{
		Store:      stores.Schedule,
		Publisher:  publisher(),
		GenerateID: generateID,
		Now:        timeNow,
	}
}

// uploadStatus maps an upload error to its admin page status code.
func uploadStatus(err error) (string, int) {
	switch {
	case errors.Is(err, schedulepdf.ErrNotPDF):
		return statusScheduleNotPDF, http.StatusBadRequest
	case errors.Is(err, schedulepdf.ErrEmptyFile):
		return statusScheduleEmpty, http.StatusBadRequest
	case errors.Is(err, schedulepdf.ErrTooLarge):
		return statusScheduleTooLarge, http.StatusRequestEntityTooLarge
	case errors.Is(err, orchestrators.ErrReadFailed):
		return statusScheduleRead, http.StatusBadRequest
	}
	return "", http.StatusInternalServerError
}

// uploadResponse is the JSON shape of an upload outcome.
type uploadResponse struct {
	Status     string    `json:"status"`
	FileName   string    `json:"fileName,omitempty"`
	UploadedAt time.Time `json:"uploadedAt,omitzero"`
	Error      string    `json:"error,omitempty"`
}

// handleUploadSchedule stores a new class schedule PDF from the multipart
// field "schedule".
func handleUploadSchedule(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	fail := func(code string, status int, fileName string) {
		if wantsJSON(r) {
			writeJSON(w, status, uploadResponse{Status: schedulepdf.StatusError, FileName: fileName, Error: statusMessages[code]})
			return
		}
		http.Redirect(w, r, "/admin?status="+code, http.StatusSeeOther)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(statusScheduleTooLarge, http.StatusRequestEntityTooLarge, "")
			return
		}
		fail(statusScheduleMissing, http.StatusBadRequest, "")
		return
	}
	file, header, err := r.FormFile("schedule")
	if err != nil {
		fail(statusScheduleMissing, http.StatusBadRequest, "")
		return
	}
	defer file.Close()

	result, err := orchestrators.ExecuteUploadSchedule(r.Context(), orchestrators.UploadScheduleInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}, scheduleDeps())
	if err != nil {
		code, status := uploadStatus(err)
		if code == "" {
			if wantsJSON(r) {
				internalJSONError(w, err)
				return
			}
			internalError(w, err)
			return
		}
		fail(code, status, result.FileName)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, uploadResponse{Status: result.Status, FileName: result.FileName, UploadedAt: result.UploadedAt})
		return
	}
	http.Redirect(w, r, "/admin?status="+statusScheduleUploaded+"&file="+url.QueryEscape(result.FileName), http.StatusSeeOther)
}

// handleResetSchedule deletes the uploaded schedule after explicit confirmation.
func handleResetSchedule(w http.ResponseWriter, r *http.Request) {
	confirmed := r.FormValue("confirm") == "yes"
	err := orchestrators.ExecuteResetSchedule(r.Context(), orchestrators.ResetScheduleInput{Confirmed: confirmed}, scheduleDeps())
	switch {
	case errors.Is(err, orchestrators.ErrConfirmationRequired):
		if wantsJSON(r) {
			writeJSONError(w, http.StatusBadRequest, statusMessages[statusResetUnconfirmed])
			return
		}
		http.Redirect(w, r, "/admin?status="+statusResetUnconfirmed, http.StatusSeeOther)
	case err != nil:
		internalError(w, err)
	case wantsJSON(r):
		writeJSON(w, http.StatusOK, map[string]string{"status": schedulepdf.StatusSuccess})
	default:
		http.Redirect(w, r, "/admin?status="+statusScheduleReset, http.StatusSeeOther)
	}
}

// handlePerf returns the request and store timing snapshot.
// ?window= accepts a Go duration (default 15m).
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "performance collection disabled")
		return
	}
	window := 15 * time.Minute
	if v := r.URL.Query().Get("window"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeJSONError(w, http.StatusBadRequest, "window must be a positive duration")
			return
		}
		window = d
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-window), 10))
}
