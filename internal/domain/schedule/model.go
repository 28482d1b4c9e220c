package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Day of week constants
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// ValidDays contains all valid day values.
var ValidDays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// TimeLayout is the display format of slot start times ("4:30 PM").
const TimeLayout = "3:04 PM"

// Domain errors
var (
	ErrInvalidDay       = errors.New("day must be a valid day of the week")
	ErrEmptyStartTime   = errors.New("start time cannot be empty")
	ErrInvalidStartTime = errors.New("start time must look like 4:30 PM")
)

// Slot is a weekly trial-lesson start time.
// Bookable slots for a date are resolved from the weekday alone.
type Slot struct {
	Day       string // monday, tuesday, etc.
	StartTime string // 3:04 PM format
}

// Validate checks if the Slot has valid data.
// PRE: Slot struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Slot) Validate() error {
	if !isValidDay(s.Day) {
		return ErrInvalidDay
	}
	if strings.TrimSpace(s.StartTime) == "" {
		return ErrEmptyStartTime
	}
	if _, err := s.Clock(); err != nil {
		return ErrInvalidStartTime
	}
	return nil
}

// Clock returns the start time as minutes after midnight.
// PRE: StartTime is in 3:04 PM format
// POST: Returns minutes in [0, 1440), or error if the time can't be parsed
func (s *Slot) Clock() (int, error) {
	t, err := time.Parse(TimeLayout, s.StartTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", s.StartTime, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Weekly is the trial-lesson timetable. Sunday has no slots.
var Weekly = []Slot{
	{Day: Monday, StartTime: "4:30 PM"},
	{Day: Monday, StartTime: "5:00 PM"},
	{Day: Monday, StartTime: "5:30 PM"},
	{Day: Monday, StartTime: "6:00 PM"},
	{Day: Tuesday, StartTime: "4:30 PM"},
	{Day: Tuesday, StartTime: "5:00 PM"},
	{Day: Tuesday, StartTime: "5:30 PM"},
	{Day: Tuesday, StartTime: "6:00 PM"},
	{Day: Wednesday, StartTime: "4:30 PM"},
	{Day: Wednesday, StartTime: "5:00 PM"},
	{Day: Wednesday, StartTime: "5:30 PM"},
	{Day: Wednesday, StartTime: "6:00 PM"},
	{Day: Thursday, StartTime: "4:30 PM"},
	{Day: Thursday, StartTime: "5:00 PM"},
	{Day: Thursday, StartTime: "5:30 PM"},
	{Day: Thursday, StartTime: "6:00 PM"},
	{Day: Friday, StartTime: "5:30 PM"},
	{Day: Friday, StartTime: "6:00 PM"},
	{Day: Friday, StartTime: "6:30 PM"},
	{Day: Saturday, StartTime: "11:00 AM"},
	{Day: Saturday, StartTime: "11:30 AM"},
	{Day: Saturday, StartTime: "12:00 PM"},
}

// DayName maps a time.Weekday to its schedule day constant.
func DayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// StartTimes returns the start times offered on the given day, in timetable order.
// PRE: day is one of ValidDays
// POST: Returns a fresh slice; empty (non-nil) when the day has no slots
func StartTimes(day string) []string {
	out := []string{}
	for _, s := range Weekly {
		if s.Day == day {
			out = append(out, s.StartTime)
		}
	}
	return out
}

func isValidDay(day string) bool {
	for _, d := range ValidDays {
		if d == day {
			return true
		}
	}
	return false
}
