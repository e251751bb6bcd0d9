package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WaitlistConfirmationEmailData holds data for the "you're on the list" email.
type WaitlistConfirmationEmailData struct {
	Email    string
	JoinedAt string
	Position int // 0 when unknown
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWaitlistConfirmation(ctx context.Context, data *WaitlistConfirmationEmailData) error
}
