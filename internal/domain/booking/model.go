package booking

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tigerlee/internal/domain/availability"
)

// Service options offered in the booking form.
const (
	ServiceTrial    = "Trial Lesson Special - $20"
	ServiceTigers   = "Little Tigers (4-5 yrs)"
	ServiceChildren = "Children's Class (6-12 yrs)"
	ServiceAdult    = "Adult Class (13+ yrs)"
	ServiceFamily   = "Family Class"
)

// Services lists the selectable services; the first is the default.
var Services = []string{ServiceTrial, ServiceTigers, ServiceChildren, ServiceAdult, ServiceFamily}

// Subject is the subject line of every booking email draft.
const Subject = "New Booking Request: Tiger Lee's TKD"

// Domain errors
var (
	ErrNoDate          = errors.New("please select a date")
	ErrDateUnavailable = errors.New("please select a valid date")
	ErrNoTime          = errors.New("please select a time slot")
	ErrTimeUnavailable = errors.New("that time slot is not available on the selected date")
	ErrEmptyRecipient  = errors.New("booking recipient is not configured")
)

// Draft is the transient booking form state. It is never persisted.
type Draft struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// NewDraft returns an empty draft preselecting the trial lesson.
func NewDraft() Draft {
	return Draft{Service: ServiceTrial}
}

// Validate checks the draft against the availability computed for its date.
// PRE: avail was computed for d.Date (ignored when Date is empty)
// POST: Returns nil only if the draft may be submitted
func (d *Draft) Validate(avail availability.DayAvailability) error {
	if strings.TrimSpace(d.Date) == "" {
		return ErrNoDate
	}
	if avail.Date != d.Date || !avail.IsBookable {
		return ErrDateUnavailable
	}
	if strings.TrimSpace(d.Time) == "" {
		return ErrNoTime
	}
	if !avail.HasSlot(d.Time) {
		return ErrTimeUnavailable
	}
	return nil
}

// Body renders the plain-text email body.
// INVARIANT: Draft is not mutated
func (d Draft) Body() string {
	var b strings.Builder
	b.WriteString("\nBooking Request Details:\n------------------------\n")
	fmt.Fprintf(&b, "Service: %s\nDate: %s\nTime: %s\n", d.Service, d.Date, d.Time)
	b.WriteString("\nContact Information:\n------------------------\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\n", d.Name, d.Email, d.Phone)
	b.WriteString("\nSent from Tiger Lee's Website Booking Form\n")
	return b.String()
}

// MailtoURL composes the pre-filled email draft link.
// PRE: recipient is a bare address
// POST: subject and body are percent-encoded (spaces as %20)
func (d Draft) MailtoURL(recipient string) (string, error) {
	if strings.TrimSpace(recipient) == "" {
		return "", ErrEmptyRecipient
	}
	return "mailto:" + recipient + "?subject=" + encodeComponent(Subject) + "&body=" + encodeComponent(d.Body()), nil
}

// componentUnescaper undoes the QueryEscape escapes that encodeURIComponent
// leaves alone, and spells spaces as %20 since mail clients show '+' literally.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s the way encodeURIComponent does.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
