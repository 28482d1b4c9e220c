package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	scheduleStore "tigerlee/internal/adapters/storage/schedulepdf"
	"tigerlee/internal/domain/admin"
	"tigerlee/internal/domain/notification"
)

var samplePDF = []byte("%PDF-1.4\n%uploaded schedule\n")

// uploadRequest builds a multipart upload with the given declared type.
func uploadRequest(t *testing.T, fileName, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="schedule"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest("POST", "/admin/schedule", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return asAdmin(req)
}

// TestHandleAdminLogin_JSON tests the credential check and cookie issue.
func TestHandleAdminLogin_JSON(t *testing.T) {
	newTestStores(t)

	rec := httptest.NewRecorder()
	handleAdminLogin(rec, jsonRequest("POST", "/admin/login", `{"username":"admin","password":"admin"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected a session cookie")
	}

	rec = httptest.NewRecorder()
	handleAdminLogin(rec, jsonRequest("POST", "/admin/login", `{"username":"admin","password":"wrong"}`))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != admin.MsgIncorrect {
		t.Errorf("error = %q, want %q", resp["error"], admin.MsgIncorrect)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("failed login must not set a cookie")
	}
}

// TestHandleAdminLogin_PasswordOnlyForm tests the booking widget prompt.
func TestHandleAdminLogin_PasswordOnlyForm(t *testing.T) {
	newTestStores(t)

	rec := httptest.NewRecorder()
	handleAdminLogin(rec, formRequest("POST", "/admin/login", "password=admin&next=%2Fbook%3Fdate%3D2024-06-03"))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/book?date=2024-06-03" {
		t.Errorf("success: status=%d Location=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	handleAdminLogin(rec, formRequest("POST", "/admin/login", "password=nope&next=%2Fbook"))
	if loc := rec.Header().Get("Location"); loc != "/book?login=failed" {
		t.Errorf("failure Location = %q", loc)
	}
}

// TestSafeNext tests redirect target filtering.
func TestSafeNext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/book", "/book"},
		{"/book?date=2024-06-03", "/book?date=2024-06-03"},
		{"", "/admin"},
		{"https://evil.example", "/admin"},
		{"//evil.example", "/admin"},
		{"/\\evil.example", "/admin"},
	}
	for _, tt := range tests {
		if got := safeNext(tt.in, "/admin"); got != tt.want {
			t.Errorf("safeNext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestHandleBlockDate tests blocking through the JSON API.
func TestHandleBlockDate(t *testing.T) {
	s := newTestStores(t)
	events := subscribe(t)

	rec := httptest.NewRecorder()
	handleBlockDate(rec, asAdmin(jsonRequest("POST", "/api/blocked-dates", `{"date":"2024-06-03"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	set, _ := s.BlockedDates.Load(context.Background())
	if !set.Contains("2024-06-03") {
		t.Error("date not stored")
	}
	e := expectEvent(t, events, notification.KindBlockedDatesChanged)
	if e.ID == "" || !e.At.Equal(fixedNow) {
		t.Errorf("event = %+v", e)
	}

	// Availability now reports the admin block.
	code, view := getAvailability(t, "date=2024-06-03")
	if code != http.StatusOK || view.IsBookable {
		t.Errorf("blocked date still bookable: %+v", view)
	}
}

// TestHandleBlockDate_Invalid tests date validation.
func TestHandleBlockDate_Invalid(t *testing.T) {
	newTestStores(t)
	for _, body := range []string{`{"date":""}`, `{"date":"03/06/2024"}`, `{"date":"2024-13-01"}`} {
		rec := httptest.NewRecorder()
		handleBlockDate(rec, asAdmin(jsonRequest("POST", "/api/blocked-dates", body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

// TestHandleUnblockDate tests removal, including a date that was never blocked.
func TestHandleUnblockDate(t *testing.T) {
	s := newTestStores(t)
	blockDates(t, s, "2024-06-03", "2024-06-10")
	events := subscribe(t)

	rec := httptest.NewRecorder()
	handleUnblockDate(rec, asAdmin(httptest.NewRequest("DELETE", "/api/blocked-dates?date=2024-06-03", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string][]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp["dates"]) != 1 || resp["dates"][0] != "2024-06-10" {
		t.Errorf("dates = %v, want [2024-06-10]", resp["dates"])
	}
	expectEvent(t, events, notification.KindBlockedDatesChanged)

	rec = httptest.NewRecorder()
	handleUnblockDate(rec, asAdmin(httptest.NewRequest("DELETE", "/api/blocked-dates?date=2024-07-01", nil)))
	if rec.Code != http.StatusOK {
		t.Errorf("unblocking an open date: status = %d, want 200", rec.Code)
	}
	select {
	case e := <-events.Events():
		t.Errorf("unexpected event for a no-op unblock: %+v", e)
	default:
	}
}

// TestHandleBlockDate_FormRedirect tests the admin page and widget forms.
func TestHandleBlockDate_FormRedirect(t *testing.T) {
	newTestStores(t)
	rec := httptest.NewRecorder()
	handleBlockDate(rec, asAdmin(formRequest("POST", "/admin/blocked-dates", "date=2024-06-03&next=%2Fbook%3Fdate%3D2024-06-03")))
	if loc := rec.Header().Get("Location"); loc != "/book?date=2024-06-03" {
		t.Errorf("Location = %q", loc)
	}

	rec = httptest.NewRecorder()
	handleBlockDate(rec, asAdmin(formRequest("POST", "/admin/blocked-dates", "date=nope")))
	if loc := rec.Header().Get("Location"); loc != "/admin?status="+statusDateInvalid {
		t.Errorf("invalid Location = %q", loc)
	}
}

// TestHandleUploadSchedule tests a successful upload end to end.
func TestHandleUploadSchedule(t *testing.T) {
	s := newTestStores(t)
	events := subscribe(t)

	rec := httptest.NewRecorder()
	handleUploadSchedule(rec, uploadRequest(t, "spring.pdf", "application/pdf", samplePDF))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp uploadResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Status != "success" || resp.FileName != "spring.pdf" || !resp.UploadedAt.Equal(fixedNow) {
		t.Errorf("response = %+v", resp)
	}
	expectEvent(t, events, notification.KindScheduleUpdated)

	doc, err := s.Schedule.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasPrefix(doc.DataURI, "data:application/pdf;base64,") {
		t.Errorf("stored value = %q", doc.DataURI)
	}

	rec = httptest.NewRecorder()
	handleSchedulePDF(rec, httptest.NewRequest("GET", "/schedule.pdf", nil))
	if !bytes.Equal(rec.Body.Bytes(), samplePDF) {
		t.Errorf("served %q, want the uploaded file", rec.Body.Bytes())
	}
}

// TestHandleUploadSchedule_Rejects tests the error statuses.
func TestHandleUploadSchedule_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        []byte
		wantCode    int
		wantMsg     string
	}{
		{"not a pdf", "image/png", []byte("\x89PNG"), http.StatusBadRequest, "Please select a valid PDF file."},
		{"empty pdf", "application/pdf", nil, http.StatusBadRequest, "The selected file is empty."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStores(t)
			events := subscribe(t)
			rec := httptest.NewRecorder()
			handleUploadSchedule(rec, uploadRequest(t, "f", tt.contentType, tt.data))
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var resp uploadResponse
			json.NewDecoder(rec.Body).Decode(&resp)
			if resp.Status != "error" || resp.Error != tt.wantMsg {
				t.Errorf("response = %+v", resp)
			}
			if _, err := s.Schedule.Load(context.Background()); !errors.Is(err, scheduleStore.ErrNotFound) {
				t.Errorf("schedule stored after rejection: %v", err)
			}
			if events.Dropped() != 0 || len(events.Events()) != 0 {
				t.Error("rejected upload published an event")
			}
		})
	}
}

// TestHandleUploadSchedule_MissingFile tests a post without the schedule field.
func TestHandleUploadSchedule_MissingFile(t *testing.T) {
	newTestStores(t)
	req := asAdmin(formRequest("POST", "/admin/schedule", "x=1"))
	rec := httptest.NewRecorder()
	handleUploadSchedule(rec, req)
	if loc := rec.Header().Get("Location"); loc != "/admin?status="+statusScheduleMissing {
		t.Errorf("Location = %q", loc)
	}
}

// TestHandleResetSchedule tests the confirmation requirement and the default fallback.
func TestHandleResetSchedule(t *testing.T) {
	newTestStores(t)
	handleUploadSchedule(httptest.NewRecorder(), uploadRequest(t, "spring.pdf", "application/pdf", samplePDF))

	rec := httptest.NewRecorder()
	handleResetSchedule(rec, asAdmin(formRequest("POST", "/admin/schedule/reset", "")))
	if loc := rec.Header().Get("Location"); loc != "/admin?status="+statusResetUnconfirmed {
		t.Fatalf("unconfirmed Location = %q", loc)
	}

	rec = httptest.NewRecorder()
	handleResetSchedule(rec, asAdmin(formRequest("POST", "/admin/schedule/reset", "confirm=yes")))
	if loc := rec.Header().Get("Location"); loc != "/admin?status="+statusScheduleReset {
		t.Fatalf("confirmed Location = %q", loc)
	}

	rec = httptest.NewRecorder()
	handleSchedulePDF(rec, httptest.NewRequest("GET", "/schedule.pdf", nil))
	if !bytes.Equal(rec.Body.Bytes(), defaultSchedule) {
		t.Error("reset did not restore the default schedule")
	}
}

// TestHandleSchedulePDF_Default tests the bundled schedule.
func TestHandleSchedulePDF_Default(t *testing.T) {
	newTestStores(t)
	rec := httptest.NewRecorder()
	handleSchedulePDF(rec, httptest.NewRequest("GET", "/schedule.pdf", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("default schedule is not a PDF")
	}
}

// TestHandleAdminPage tests both gate states.
func TestHandleAdminPage(t *testing.T) {
	s := newTestStores(t)
	blockDates(t, s, "2024-06-10")

	rec := httptest.NewRecorder()
	handleAdminPage(rec, httptest.NewRequest("GET", "/admin?login=failed", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `name="username"`) || !strings.Contains(body, "Incorrect username or password") {
		t.Error("logged-out page must show the login form and the generic error")
	}
	if strings.Contains(body, "2024-06-10") {
		t.Error("logged-out page leaks blocked dates")
	}

	rec = httptest.NewRecorder()
	handleAdminPage(rec, asAdmin(httptest.NewRequest("GET", "/admin?status="+statusScheduleNotPDF, nil)))
	body = rec.Body.String()
	for _, want := range []string{"2024-06-10", "placeholder credential", "Please select a valid PDF file.", "The default schedule is live."} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

// TestHandlePerf tests the timing snapshot endpoint.
func TestHandlePerf(t *testing.T) {
	h, _ := newTestServer(t)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/availability?date=2024-06-03", nil))

	rec := httptest.NewRecorder()
	handlePerf(rec, httptest.NewRequest("GET", "/api/admin/perf?window=1h", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap struct {
		TotalRecorded int64 `json:"totalRecorded"`
	}
	json.NewDecoder(rec.Body).Decode(&snap)
	if snap.TotalRecorded == 0 {
		t.Error("expected recorded samples")
	}

	rec = httptest.NewRecorder()
	handlePerf(rec, httptest.NewRequest("GET", "/api/admin/perf?window=soon", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad window: status = %d, want 400", rec.Code)
	}
}
