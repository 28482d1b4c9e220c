package notification

import (
	"errors"
	"time"
)

// Event kinds pushed to subscribers.
const (
	KindScheduleUpdated     = "schedule_updated"
	KindBlockedDatesChanged = "blocked_dates_changed"
)

// ValidKinds contains all event kinds.
var ValidKinds = []string{KindScheduleUpdated, KindBlockedDatesChanged}

// Domain errors
var (
	ErrEmptyID     = errors.New("event id cannot be empty")
	ErrInvalidKind = errors.New("unknown event kind")
	ErrZeroTime    = errors.New("event time must be set")
)

// Event tells open views that shared state changed and should be re-read.
// It carries no payload beyond a short human-readable detail.
type Event struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	At     time.Time `json:"at"`
	Detail string    `json:"detail,omitempty"`
}

// Validate checks if the Event has valid data.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if !isValidKind(e.Kind) {
		return ErrInvalidKind
	}
	if e.At.IsZero() {
		return ErrZeroTime
	}
	return nil
}

func isValidKind(k string) bool {
	for _, v := range ValidKinds {
		if v == k {
			return true
		}
	}
	return false
}
