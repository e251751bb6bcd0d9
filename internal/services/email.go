package services

import (
	"context"
	"fmt"
	"log/slog"

	"landingwaitlist/internal/domain"
)

const waitlistConfirmationTemplate = "waitlist_confirmation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendWaitlistConfirmation sends the "you're on the list" email.
func (s *emailService) SendWaitlistConfirmation(ctx context.Context, data *domain.WaitlistConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("waitlist confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(waitlistConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", waitlistConfirmationTemplate, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send waitlist confirmation: %w", err)
	}
	s.logger.InfoContext(ctx, "waitlist confirmation sent", "email", data.Email)
	return nil
}
