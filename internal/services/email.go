package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventactivities/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendCertificateAvailable tells a participant that the certificates of an event can be collected.
func (s *emailService) SendCertificateAvailable(ctx context.Context, data *domain.CertificateEmailData) error {
	if data == nil {
		return fmt.Errorf("certificate email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("certificate_available", data)
	if err != nil {
		return fmt.Errorf("failed to render certificate_available template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send certificate email: %w", err)
	}
	s.logger.InfoContext(ctx, "certificate email sent", "email", data.Email)
	return nil
}
