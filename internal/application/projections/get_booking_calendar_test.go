package projections

import (
	"context"
	"testing"

	"tigerlee/internal/domain/blockeddate"
)

// TestQueryGetBookingCalendar_June2024 tests the grid for a month starting on Saturday.
func TestQueryGetBookingCalendar_June2024(t *testing.T) {
	deps := GetBookingCalendarDeps{
		BlockedDates: mockBlockedStore{set: blockeddate.NewSet("2024-06-12")},
		Now:          fixedClock(2024, 6, 3),
	}
	cal, err := QueryGetBookingCalendar(context.Background(), GetBookingCalendarInput{Selected: "2024-06-14"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cal.Month != "2024-06" || cal.Title != "June 2024" || cal.Prev != "2024-05" || cal.Next != "2024-07" {
		t.Errorf("header = %s %q %s %s", cal.Month, cal.Title, cal.Prev, cal.Next)
	}
	// June 1 2024 is a Saturday: six padding cells, 30 days, six weeks.
	if len(cal.Weeks) != 6 {
		t.Fatalf("weeks = %d, want 6", len(cal.Weeks))
	}
	first := cal.Weeks[0]
	for i := 0; i < 6; i++ {
		if first[i].Day != 0 {
			t.Errorf("cell %d = %+v, want padding", i, first[i])
		}
	}
	if first[6].Date != "2024-06-01" {
		t.Errorf("first date = %q", first[6].Date)
	}

	byDate := map[string]CalendarDay{}
	for _, w := range cal.Weeks {
		if len(w) != 7 {
			t.Fatalf("week has %d cells", len(w))
		}
		for _, c := range w {
			if c.Date != "" {
				byDate[c.Date] = c
			}
		}
	}
	if len(byDate) != 30 {
		t.Errorf("days = %d, want 30", len(byDate))
	}
	if c := byDate["2024-06-02"]; !c.IsSunday || !c.Disabled {
		t.Errorf("sunday cell = %+v", c)
	}
	if c := byDate["2024-06-12"]; !c.IsBlocked || !c.Disabled {
		t.Errorf("blocked cell = %+v", c)
	}
	if c := byDate["2024-06-03"]; !c.IsToday || c.Disabled {
		t.Errorf("today cell = %+v", c)
	}
	if c := byDate["2024-06-14"]; !c.IsSelected {
		t.Errorf("selected cell = %+v", c)
	}
}

// TestQueryGetBookingCalendar_Navigation tests explicit months and year rollover.
func TestQueryGetBookingCalendar_Navigation(t *testing.T) {
	deps := GetBookingCalendarDeps{BlockedDates: mockBlockedStore{}, Now: fixedClock(2024, 6, 3)}
	tests := []struct {
		month     string
		prev      string
		next      string
		weeks     int
		firstCell int
	}{
		{"2024-12", "2024-11", "2025-01", 5, 0}, // Dec 1 2024 is a Sunday
		{"2025-01", "2024-12", "2025-02", 5, 3},
		{"2026-02", "2026-01", "2026-03", 4, 0}, // Feb 2026 fits four weeks exactly
	}
	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			cal, err := QueryGetBookingCalendar(context.Background(), GetBookingCalendarInput{Month: tt.month}, deps)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cal.Prev != tt.prev || cal.Next != tt.next {
				t.Errorf("prev/next = %s/%s", cal.Prev, cal.Next)
			}
			if len(cal.Weeks) != tt.weeks {
				t.Errorf("weeks = %d, want %d", len(cal.Weeks), tt.weeks)
			}
			padding := 0
			for _, c := range cal.Weeks[0] {
				if c.Day != 0 {
					break
				}
				padding++
			}
			if padding != tt.firstCell {
				t.Errorf("leading padding = %d, want %d", padding, tt.firstCell)
			}
		})
	}
}

// TestQueryGetBookingCalendar_InvalidMonth tests month validation.
func TestQueryGetBookingCalendar_InvalidMonth(t *testing.T) {
	deps := GetBookingCalendarDeps{BlockedDates: mockBlockedStore{}, Now: fixedClock(2024, 6, 3)}
	for _, m := range []string{"June", "2024-13", "2024-6-01"} {
		if _, err := QueryGetBookingCalendar(context.Background(), GetBookingCalendarInput{Month: m}, deps); err != ErrInvalidMonth {
			t.Errorf("month %q: error = %v, want ErrInvalidMonth", m, err)
		}
	}
}
