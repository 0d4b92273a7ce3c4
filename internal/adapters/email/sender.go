package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send a notification via an
// external provider. The kiosk's accounts carry phone numbers, not email
// addresses, so every notification goes to the cafe operator's inbox.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "Cafe PC <noreply@cafepc.local>")
	Subject string
	HTML    string // HTML body
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending notifications via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
