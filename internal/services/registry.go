package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"eventactivities/internal/domain"
	"eventactivities/internal/scheduling"
)

type registryService struct {
	uow            domain.UnitOfWork
	detector       *scheduling.Detector
	contextTimeout time.Duration
	now            func() time.Time
}

func NewRegistryService(uow domain.UnitOfWork, detector *scheduling.Detector, timeout time.Duration) domain.RegistryService {
	return &registryService{
		uow:            uow,
		detector:       detector,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *registryService) Register(ctx context.Context, activityID, userID string) (_ *domain.Registry, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "RegistryService.Register",
		attribute.String("activity.id", activityID), attribute.String("user.id", userID))
	defer func() { endSpan(span, err) }()

	var registry *domain.Registry
	err = s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		activity, err := getActivity(ctx, store, activityID)
		if err != nil {
			return err
		}
		event, err := getEvent(ctx, store, activity.EventID)
		if err != nil {
			return err
		}
		now := s.now()
		if !event.InRegistryWindow(now) {
			return domain.ErrOutsideRegistryWindow
		}
		if !event.StatusVisible {
			return domain.ErrInvisibleEvent
		}
		if activity.IsResponsible(userID) {
			return domain.ErrResponsibleRegistry
		}
		if err := ensureNotRegistered(ctx, store, activityID, userID); err != nil {
			return err
		}
		taken, err := store.Registries().CountByActivityID(ctx, activityID)
		if err != nil {
			return fmt.Errorf("count registries: %w", err)
		}
		if taken >= activity.TotalVacancy {
			return domain.ErrNoVacancy
		}
		registry, err = s.create(ctx, store, activity, userID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// RegisterByResponsible registers userID on behalf of an organizer, ignoring the registry
// window, the responsible exclusion and the vacancy limit.
func (s *registryService) RegisterByResponsible(ctx context.Context, activityID, userID, callerID string) (_ *domain.Registry, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "RegistryService.RegisterByResponsible",
		attribute.String("activity.id", activityID), attribute.String("user.id", userID))
	defer func() { endSpan(span, err) }()

	var registry *domain.Registry
	err = s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		activity, err := getActivity(ctx, store, activityID)
		if err != nil {
			return err
		}
		event, err := getEvent(ctx, store, activity.EventID)
		if err != nil {
			return err
		}
		if !activity.IsResponsible(callerID) && !event.IsResponsible(callerID) {
			return domain.ErrForbidden
		}
		if _, err := store.Users().GetByID(ctx, userID); err != nil {
			return notFoundOr(err, "get user")
		}
		if !event.StatusVisible {
			return domain.ErrInvisibleEvent
		}
		if err := ensureNotRegistered(ctx, store, activityID, userID); err != nil {
			return err
		}
		registry, err = s.create(ctx, store, activity, userID, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// create runs the registrant conflict check and stores a fresh registry.
func (s *registryService) create(ctx context.Context, store domain.Store, activity *domain.Activity, userID string, now time.Time) (*domain.Registry, error) {
	err := s.detector.CheckRegistrant(ctx, store.Schedules(), scheduling.RegistrantRequest{
		ActivityID: activity.ID,
		UserID:     userID,
		Schedules:  activity.Schedules,
		Now:        now,
	})
	if err != nil {
		return nil, err
	}
	registry := domain.NewRegistry(activity, userID, now)
	if err := store.Registries().Create(ctx, registry); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("create registry: %w", err)
	}
	return registry, nil
}

func ensureNotRegistered(ctx context.Context, store domain.Store, activityID, userID string) error {
	_, err := store.Registries().GetByActivityAndUser(ctx, activityID, userID)
	switch {
	case err == nil:
		return domain.ErrAlreadyRegistered
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("get registry: %w", err)
	}
}

func (s *registryService) Delete(ctx context.Context, activityID, userID string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "RegistryService.Delete",
		attribute.String("activity.id", activityID), attribute.String("user.id", userID))
	defer func() { endSpan(span, err) }()

	return s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		activity, err := getActivity(ctx, store, activityID)
		if err != nil {
			return err
		}
		event, err := getEvent(ctx, store, activity.EventID)
		if err != nil {
			return err
		}
		if !event.Active(s.now()) {
			return domain.ErrArchivedEvent
		}
		if !event.StatusVisible {
			return domain.ErrInvisibleEvent
		}
		registry, err := store.Registries().GetByActivityAndUser(ctx, activityID, userID)
		if err != nil {
			return notFoundOr(err, "get registry")
		}
		if err := store.Registries().Delete(ctx, registry.ID); err != nil {
			return fmt.Errorf("delete registry: %w", err)
		}
		return nil
	})
}

func (s *registryService) SetPresence(ctx context.Context, registryID, scheduleID string, present bool, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		registry, err := s.managedRegistry(ctx, store, registryID, callerID)
		if err != nil {
			return err
		}
		if err := store.Registries().SetPresence(ctx, registry.ID, scheduleID, present); err != nil {
			return notFoundOr(err, "set presence")
		}
		return nil
	})
}

func (s *registryService) SetReadyForCertificate(ctx context.Context, registryID string, ready bool, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		registry, err := s.managedRegistry(ctx, store, registryID, callerID)
		if err != nil {
			return err
		}
		if err := store.Registries().SetReadyForCertificate(ctx, registry.ID, ready); err != nil {
			return fmt.Errorf("set registry ready for certificate: %w", err)
		}
		return nil
	})
}

// managedRegistry loads a registry that callerID organizes, through the activity or its event.
func (s *registryService) managedRegistry(ctx context.Context, store domain.Store, registryID, callerID string) (*domain.Registry, error) {
	registry, err := store.Registries().GetByID(ctx, registryID)
	if err != nil {
		return nil, notFoundOr(err, "get registry")
	}
	activity, err := getActivity(ctx, store, registry.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity.IsResponsible(callerID) {
		return registry, nil
	}
	event, err := getEvent(ctx, store, activity.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsResponsible(callerID) {
		return nil, domain.ErrForbidden
	}
	return registry, nil
}

func (s *registryService) Rate(ctx context.Context, activityID, userID string, rating int) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rating < domain.MinRating || rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	return s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		registry, err := store.Registries().GetByActivityAndUser(ctx, activityID, userID)
		if err != nil {
			return notFoundOr(err, "get registry")
		}
		if err := store.Registries().SetRating(ctx, registry.ID, rating); err != nil {
			return fmt.Errorf("set rating: %w", err)
		}
		return nil
	})
}

func (s *registryService) ListByUser(ctx context.Context, userID string) ([]*domain.RegistryWithActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	out := make([]*domain.RegistryWithActivity, 0)
	err := s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		registries, err := store.Registries().ListByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("list registries: %w", err)
		}
		for _, r := range registries {
			activity, err := getActivity(ctx, store, r.ActivityID)
			if err != nil {
				return err
			}
			out = append(out, &domain.RegistryWithActivity{Registry: r, Activity: activity})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
