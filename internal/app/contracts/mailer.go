package contracts

import "context"

type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// MailerService publishes email jobs onto the delivery queue; sending is
// asynchronous and fire-and-forget from the caller's point of view.
type MailerService interface {
	SendEmail(ctx context.Context, payload *EmailPayload) error
}
