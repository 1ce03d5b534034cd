package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"eventactivities/internal/domain"
)

type eventService struct {
	uow            domain.UnitOfWork
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(uow domain.UnitOfWork, timeout time.Duration) domain.EventService {
	return &eventService{
		uow:            uow,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "EventService.CreateEvent")
	defer func() { endSpan(span, err) }()

	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" || len(event.ResponsibleUserIDs) == 0 {
		return domain.ErrInvalidInput
	}
	if err := event.ValidateDates(); err != nil {
		return err
	}
	if err := event.Normalize(); err != nil {
		return err
	}
	now := s.now()
	event.CreatedAt = now
	event.UpdatedAt = now

	event.ResponsibleUserIDs = distinct(event.ResponsibleUserIDs)

	return s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		if err := checkUsers(ctx, store, event.ResponsibleUserIDs); err != nil {
			return err
		}
		if err := store.Events().Create(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var event *domain.Event
	err := s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		var err error
		event, err = getEvent(ctx, store, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID string, patch domain.EventPatch) (_ *domain.Event, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "EventService.UpdateEvent", attribute.String("event.id", eventID))
	defer func() { endSpan(span, err) }()

	var event *domain.Event
	err = s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		var err error
		event, err = getEvent(ctx, store, eventID)
		if err != nil {
			return err
		}
		if !event.IsResponsible(callerID) {
			return domain.ErrForbidden
		}
		applyEventPatch(event, patch)
		if event.Name == "" {
			return domain.ErrInvalidInput
		}
		if err := event.Normalize(); err != nil {
			return err
		}
		event.UpdatedAt = s.now()
		if err := store.Events().Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func applyEventPatch(e *domain.Event, p domain.EventPatch) {
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.RegistryStartDate != nil {
		e.RegistryStartDate = *p.RegistryStartDate
	}
	if p.RegistryEndDate != nil {
		e.RegistryEndDate = *p.RegistryEndDate
	}
	if p.StatusVisible != nil {
		e.StatusVisible = *p.StatusVisible
	}
	if p.StatusActive != nil {
		e.StatusActive = *p.StatusActive
	}
}

// getEvent loads an event, passing ErrNotFound through unwrapped.
func getEvent(ctx context.Context, store domain.Store, eventID string) (*domain.Event, error) {
	event, err := store.Events().GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// getActivity loads an activity, passing ErrNotFound through unwrapped.
func getActivity(ctx context.Context, store domain.Store, activityID string) (*domain.Activity, error) {
	activity, err := store.Activities().GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return activity, nil
}
