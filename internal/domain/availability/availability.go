// Package availability decides whether a calendar date can be booked and
// which trial-lesson slots it offers.
package availability

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"tigerlee/internal/domain/blockeddate"
	"tigerlee/internal/domain/schedule"
)

// Reasons shown to visitors when a date cannot be booked.
const (
	ReasonBlocked = "This date has been blocked by the administrator."
	ReasonSunday  = "Sorry, we are closed on Sundays."
)

// ErrInvalidDate is returned when a date string is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("date must be formatted YYYY-MM-DD")

// DayAvailability is derived from a date and the blocked set; it is never stored.
type DayAvailability struct {
	Date       string   `json:"date"`
	IsBookable bool     `json:"isBookable"`
	Reason     string   `json:"reason,omitempty"`
	Slots      []string `json:"slots"`
}

// HasSlot reports whether t is one of the offered slots.
// INVARIANT: DayAvailability is not mutated
func (a DayAvailability) HasSlot(t string) bool {
	for _, s := range a.Slots {
		if s == t {
			return true
		}
	}
	return false
}

// ParseDate builds a date from explicit year/month/day components.
// The result is midnight UTC so the weekday never shifts with the host timezone.
// PRE: none
// POST: Returns ErrInvalidDate unless s is YYYY-MM-DD naming a real day
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return time.Time{}, ErrInvalidDate
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, ErrInvalidDate
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 {
		return time.Time{}, ErrInvalidDate
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (Feb 30 -> Mar 1); reject it instead.
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// Compute evaluates the booking rules for date. First match wins:
// blocked by an administrator, then closed on Sunday, then the weekday timetable.
// PRE: none
// POST: Slots is non-nil; empty whenever IsBookable is false
func Compute(date string, blocked blockeddate.Set) (DayAvailability, error) {
	d, err := ParseDate(date)
	if err != nil {
		return DayAvailability{}, err
	}

	out := DayAvailability{Date: date, Slots: []string{}}
	switch {
	case blocked.Contains(date):
		out.Reason = ReasonBlocked
	case d.Weekday() == time.Sunday:
		out.Reason = ReasonSunday
	default:
		out.Slots = schedule.StartTimes(schedule.DayName(d.Weekday()))
		out.IsBookable = len(out.Slots) > 0
	}
	return out, nil
}

// ReconcileTime returns the selection to keep after availability changes.
// A time that is no longer offered is cleared.
func ReconcileTime(selected string, a DayAvailability) string {
	if selected == "" || !a.IsBookable || !a.HasSlot(selected) {
		return ""
	}
	return selected
}
