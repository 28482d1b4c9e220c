package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"tigerlee/internal/application/orchestrators"
	"tigerlee/internal/application/projections"
	"tigerlee/internal/domain/admin"
	"tigerlee/internal/domain/availability"
	"tigerlee/internal/domain/booking"
)

// bookPageData backs the booking widget.
type bookPageData struct {
	Calendar          projections.BookingCalendar
	Availability      *projections.AvailabilityView
	Draft             booking.Draft
	Services          []string
	Error             string
	LoginError        string
	SelectedIsBlocked bool
}

// DraftURL links to the booking page for date shown in month. The draft
// travels with the link; buildBookPage drops the time if date does not offer it.
func (d bookPageData) DraftURL(date, month string) string {
	q := url.Values{}
	for k, v := range map[string]string{
		"date":    date,
		"month":   month,
		"service": d.Draft.Service,
		"time":    d.Draft.Time,
		"name":    d.Draft.Name,
		"email":   d.Draft.Email,
		"phone":   d.Draft.Phone,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return "/book?" + q.Encode()
}

// buildBookPage resolves the calendar and the selected date's availability.
// An unparseable date is dropped rather than failing the page.
func buildBookPage(r *http.Request, draft booking.Draft, errMsg string) (bookPageData, error) {
	ctx := r.Context()
	month := r.URL.Query().Get("month")
	if month == "" && len(draft.Date) >= 7 {
		month = draft.Date[:7]
	}

	cal, err := projections.QueryGetBookingCalendar(ctx, projections.GetBookingCalendarInput{Month: month, Selected: draft.Date}, projections.GetBookingCalendarDeps{
		BlockedDates: stores.BlockedDates,
		Now:          timeNow,
	})
	if errors.Is(err, projections.ErrInvalidMonth) {
		cal, err = projections.QueryGetBookingCalendar(ctx, projections.GetBookingCalendarInput{Selected: draft.Date}, projections.GetBookingCalendarDeps{
			BlockedDates: stores.BlockedDates,
			Now:          timeNow,
		})
	}
	if err != nil {
		return bookPageData{}, err
	}

	data := bookPageData{Calendar: cal, Draft: draft, Services: booking.Services, Error: errMsg}
	if r.URL.Query().Get("login") == "failed" {
		data.LoginError = admin.MsgIncorrect
	}
	if draft.Date != "" {
		view, err := projections.QueryGetAvailability(ctx, projections.GetAvailabilityInput{Date: draft.Date, Time: draft.Time}, projections.GetAvailabilityDeps{
			BlockedDates: stores.BlockedDates,
		})
		switch {
		case err == nil:
			data.Availability = &view
			data.Draft.Time = view.Time
			data.SelectedIsBlocked = view.Reason == availability.ReasonBlocked
		case errors.Is(err, availability.ErrInvalidDate):
			data.Draft.Date = ""
			data.Draft.Time = ""
		default:
			return bookPageData{}, err
		}
	}
	return data, nil
}

// draftFromQuery reads a draft from query parameters so calendar links keep
// what the visitor already entered.
func draftFromQuery(r *http.Request) booking.Draft {
	q := r.URL.Query()
	d := booking.NewDraft()
	if s := q.Get("service"); s != "" {
		d.Service = s
	}
	d.Date = q.Get("date")
	d.Time = q.Get("time")
	d.Name = strings.TrimSpace(q.Get("name"))
	d.Email = strings.TrimSpace(q.Get("email"))
	d.Phone = strings.TrimSpace(q.Get("phone"))
	return d
}

// handleBookPage renders the booking widget.
func handleBookPage(w http.ResponseWriter, r *http.Request) {
	data, err := buildBookPage(r, draftFromQuery(r), "")
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, http.StatusOK, "book.html", "Book a Trial Lesson", data)
}

// handleAvailability returns the bookable state and slots for one date.
func handleAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := projections.QueryGetAvailability(r.Context(), projections.GetAvailabilityInput{
		Date: q.Get("date"),
		Time: q.Get("time"),
	}, projections.GetAvailabilityDeps{BlockedDates: stores.BlockedDates})
	if errors.Is(err, availability.ErrInvalidDate) {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleCalendar returns the month grid.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cal, err := projections.QueryGetBookingCalendar(r.Context(), projections.GetBookingCalendarInput{
		Month:    q.Get("month"),
		Selected: q.Get("date"),
	}, projections.GetBookingCalendarDeps{BlockedDates: stores.BlockedDates, Now: timeNow})
	if errors.Is(err, projections.ErrInvalidMonth) {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

// isBookingError reports whether err is a visitor-facing validation failure.
func isBookingError(err error) bool {
	return errors.Is(err, booking.ErrNoDate) ||
		errors.Is(err, booking.ErrDateUnavailable) ||
		errors.Is(err, booking.ErrNoTime) ||
		errors.Is(err, booking.ErrTimeUnavailable)
}

// handleSubmitBooking validates the booking form and hands the visitor an
// email draft. JSON callers receive the link; browsers are redirected to it.
func handleSubmitBooking(w http.ResponseWriter, r *http.Request) {
	draft := booking.NewDraft()
	if isJSONRequest(r) {
		if err := strictDecode(r, &draft); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		draft = booking.Draft{
			Service: r.FormValue("service"),
			Date:    strings.TrimSpace(r.FormValue("date")),
			Time:    r.FormValue("time"),
			Name:    strings.TrimSpace(r.FormValue("name")),
			Email:   strings.TrimSpace(r.FormValue("email")),
			Phone:   strings.TrimSpace(r.FormValue("phone")),
		}
	}

	link, err := orchestrators.ExecuteSubmitBooking(r.Context(), draft, orchestrators.SubmitBookingDeps{
		BlockedDates: stores.BlockedDates,
		Recipient:    bookingRecipient,
	})
	if err != nil {
		if !isBookingError(err) {
			if wantsJSON(r) {
				internalJSONError(w, err)
				return
			}
			internalError(w, err)
			return
		}
		if wantsJSON(r) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		data, perr := buildBookPage(r, draft, err.Error())
		if perr != nil {
			internalError(w, perr)
			return
		}
		renderTemplate(w, r, http.StatusBadRequest, "book.html", "Book a Trial Lesson", data)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{"mailto": link})
		return
	}
	http.Redirect(w, r, link, http.StatusSeeOther)
}
