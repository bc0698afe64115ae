package ports

import "context"

// Mailer delivers a plain-text message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailService is the authenticated outbound-email operation.
type MailService interface {
	Send(ctx context.Context, userID, to, subject, body string) error
}
