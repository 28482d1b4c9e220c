package blockeddate

import (
	"encoding/json"
	"errors"
	"sort"
	"time"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrEmptyDate   = errors.New("date cannot be empty")
	ErrInvalidDate = errors.New("date must be formatted YYYY-MM-DD")
)

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
// PRE: none
// POST: Returns nil if valid, error otherwise
func ValidateDate(s string) error {
	if s == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Set is the collection of dates an administrator has closed to bookings.
// Dates are unique and kept in lexicographic (= chronological) order.
// The zero value is an empty set.
type Set struct {
	dates []string
}

// NewSet builds a set from arbitrary input, dropping duplicates.
// PRE: none
// POST: Returned set is sorted and unique
func NewSet(dates ...string) Set {
	var s Set
	for _, d := range dates {
		if !s.Contains(d) {
			s.dates = append(s.dates, d)
		}
	}
	sort.Strings(s.dates)
	return s
}

// Contains reports whether date is blocked (exact string match).
// INVARIANT: Set is not mutated
func (s Set) Contains(date string) bool {
	for _, d := range s.dates {
		if d == date {
			return true
		}
	}
	return false
}

// Add inserts date and re-sorts. It is a no-op if date is already present.
// PRE: date has passed ValidateDate
// POST: Returns true if the set changed
func (s *Set) Add(date string) bool {
	if s.Contains(date) {
		return false
	}
	s.dates = append(s.dates, date)
	sort.Strings(s.dates)
	return true
}

// Remove deletes date by exact match.
// POST: Returns true if something was removed
func (s *Set) Remove(date string) bool {
	kept := s.dates[:0:0]
	for _, d := range s.dates {
		if d != date {
			kept = append(kept, d)
		}
	}
	removed := len(kept) != len(s.dates)
	s.dates = kept
	return removed
}

// Dates returns a copy of the blocked dates in sorted order.
// INVARIANT: Set is not mutated
func (s Set) Dates() []string {
	out := make([]string, len(s.dates))
	copy(out, s.dates)
	return out
}

// Len returns the number of blocked dates.
func (s Set) Len() int {
	return len(s.dates)
}

// MarshalJSON encodes the set as a JSON array of date strings ([] when empty).
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Dates())
}

// UnmarshalJSON decodes a JSON array of date strings.
// Entries are kept as stored; only their type is checked.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewSet(raw...)
	return nil
}
