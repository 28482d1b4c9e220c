package email

import (
	"context"
	"time"
)

// Message is a staff notification handed to a provider.
type Message struct {
	To      []string
	From    string // overrides the sender's default when set
	Subject string
	HTML    string
	ReplyTo string
}

// Receipt is the provider's acknowledgement of a message.
type Receipt struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers messages through an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
