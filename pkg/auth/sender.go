package auth

import "context"

// Sender abstracts outbound notification delivery (e.g., SMTP).
// It allows use cases to stay transport-agnostic and testable.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
