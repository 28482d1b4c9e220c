package projections

import (
	"context"
	"errors"
	"time"

	"tigerlee/internal/domain/blockeddate"
)

// MonthLayout is the query format for a calendar month.
const MonthLayout = "2006-01"

// ErrInvalidMonth is returned for a month that is not YYYY-MM.
var ErrInvalidMonth = errors.New("month must be formatted YYYY-MM")

// WeekdayHeaders label the calendar columns, Sunday first.
var WeekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// GetBookingCalendarInput selects the month to show and the highlighted date.
// An empty Month means the month containing today.
type GetBookingCalendarInput struct {
	Month    string
	Selected string
}

// GetBookingCalendarDeps holds dependencies for QueryGetBookingCalendar.
type GetBookingCalendarDeps struct {
	BlockedDates BlockedDateStoreForProjection
	Now          func() time.Time
}

// CalendarDay is one cell of the month grid. Day is 0 for padding cells.
type CalendarDay struct {
	Date       string `json:"date,omitempty"`
	Day        int    `json:"day"`
	IsToday    bool   `json:"isToday"`
	IsSelected bool   `json:"isSelected"`
	IsBlocked  bool   `json:"isBlocked"`
	IsSunday   bool   `json:"isSunday"`
	Disabled   bool   `json:"disabled"`
}

// BookingCalendar is a month grid split into Sunday-first weeks.
type BookingCalendar struct {
	Month    string          `json:"month"`
	Title    string          `json:"title"`
	Prev     string          `json:"prev"`
	Next     string          `json:"next"`
	Headers  []string        `json:"headers"`
	Weeks    [][]CalendarDay `json:"weeks"`
	Selected string          `json:"selected,omitempty"`
}

// QueryGetBookingCalendar builds the month grid shown in the booking widget.
// Dates are handled as plain calendar values; "today" is taken from Now's
// own location.
// POST: every week has 7 cells; Sundays and blocked dates are Disabled
func QueryGetBookingCalendar(ctx context.Context, input GetBookingCalendarInput, deps GetBookingCalendarDeps) (BookingCalendar, error) {
	now := deps.Now()
	today := now.Format(blockeddate.DateLayout)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if input.Month != "" {
		m, err := time.Parse(MonthLayout, input.Month)
		if err != nil {
			return BookingCalendar{}, ErrInvalidMonth
		}
		first = m
	}

	blocked, err := deps.BlockedDates.Load(ctx)
	if err != nil {
		return BookingCalendar{}, err
	}

	cal := BookingCalendar{
		Month:    first.Format(MonthLayout),
		Title:    first.Format("January 2006"),
		Prev:     first.AddDate(0, -1, 0).Format(MonthLayout),
		Next:     first.AddDate(0, 1, 0).Format(MonthLayout),
		Headers:  WeekdayHeaders,
		Selected: input.Selected,
	}

	cells := make([]CalendarDay, int(first.Weekday()))
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		date := d.Format(blockeddate.DateLayout)
		cell := CalendarDay{
			Date:       date,
			Day:        d.Day(),
			IsToday:    date == today,
			IsSelected: date == input.Selected,
			IsBlocked:  blocked.Contains(date),
			IsSunday:   d.Weekday() == time.Sunday,
		}
		cell.Disabled = cell.IsBlocked || cell.IsSunday
		cells = append(cells, cell)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, CalendarDay{})
	}
	for i := 0; i < len(cells); i += 7 {
		cal.Weeks = append(cal.Weeks, cells[i:i+7])
	}
	return cal, nil
}
