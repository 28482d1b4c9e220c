package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"tigerlee/internal/domain/availability"
	"tigerlee/internal/domain/blockeddate"
	"tigerlee/internal/domain/booking"
)

// BookingBlockedDateStore defines the store interface needed by ExecuteSubmitBooking.
type BookingBlockedDateStore interface {
	Load(ctx context.Context) (blockeddate.Set, error)
}

// SubmitBookingDeps holds dependencies for ExecuteSubmitBooking.
type SubmitBookingDeps struct {
	BlockedDates BookingBlockedDateStore
	Recipient    string
}

// ExecuteSubmitBooking validates a draft against current availability and
// composes the email draft link. Nothing is stored or sent.
// PRE: Recipient is configured
// POST: returns a mailto: URL, or the first validation error
func ExecuteSubmitBooking(ctx context.Context, draft booking.Draft, deps SubmitBookingDeps) (string, error) {
	draft.Service = strings.TrimSpace(draft.Service)
	if draft.Service == "" {
		draft.Service = booking.ServiceTrial
	}
	if strings.TrimSpace(draft.Date) == "" {
		return "", booking.ErrNoDate
	}

	blocked, err := deps.BlockedDates.Load(ctx)
	if err != nil {
		return "", err
	}
	avail, err := availability.Compute(draft.Date, blocked)
	if err != nil {
		return "", booking.ErrDateUnavailable
	}
	if err := draft.Validate(avail); err != nil {
		return "", err
	}

	link, err := draft.MailtoURL(deps.Recipient)
	if err != nil {
		return "", err
	}
	slog.Info("booking_event", "event", "booking_composed", "service", draft.Service, "date", draft.Date, "time", draft.Time)
	return link, nil
}
