package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"eventactivities/internal/domain"
)

type certificateService struct {
	uow            domain.UnitOfWork
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewCertificateService(uow domain.UnitOfWork, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.CertificateService {
	return &certificateService{
		uow:            uow,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// IsReadyForEmission reports whether every activity of the event is flagged ready.
// An event without activities is ready.
func (s *certificateService) IsReadyForEmission(ctx context.Context, eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var ready bool
	err := s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		if _, err := getEvent(ctx, store, eventID); err != nil {
			return err
		}
		var err error
		ready, err = eventReady(ctx, store, eventID)
		return err
	})
	return ready, err
}

func (s *certificateService) FilterReadyForCertificate(ctx context.Context, eventID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var emails []string
	err := s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		if _, err := getEvent(ctx, store, eventID); err != nil {
			return err
		}
		var err error
		emails, err = store.Registries().ListReadyEmailsByEventID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list ready emails: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if emails == nil {
		emails = []string{}
	}
	return emails, nil
}

// EmitCertificates notifies every eligible user of the event. A failed notification is logged
// and reported in failed; the remaining recipients are still notified.
func (s *certificateService) EmitCertificates(ctx context.Context, eventID, callerID string) (sent int, failed []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "CertificateService.EmitCertificates", attribute.String("event.id", eventID))
	defer func() {
		span.SetAttributes(attribute.Int("certificates.sent", sent), attribute.Int("certificates.failed", len(failed)))
		endSpan(span, err)
	}()

	var event *domain.Event
	var emails []string
	err = s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		var err error
		event, err = getEvent(ctx, store, eventID)
		if err != nil {
			return err
		}
		if !event.IsResponsible(callerID) {
			return domain.ErrForbidden
		}
		ready, err := eventReady(ctx, store, eventID)
		if err != nil {
			return err
		}
		if !ready {
			return domain.ErrCertificatesNotReady
		}
		emails, err = store.Registries().ListReadyEmailsByEventID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list ready emails: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	for _, email := range emails {
		data := &domain.CertificateEmailData{Email: email, EventName: event.Name}
		if err := s.emailService.SendCertificateAvailable(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "certificate notification failed", "event_id", eventID, "email", email, "error", err)
			failed = append(failed, email)
			continue
		}
		sent++
	}
	return sent, failed, nil
}

func eventReady(ctx context.Context, store domain.Store, eventID string) (bool, error) {
	activities, err := store.Activities().ListByEventID(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("list activities: %w", err)
	}
	for _, a := range activities {
		if !a.ReadyForCertificate {
			return false, nil
		}
	}
	return true, nil
}
