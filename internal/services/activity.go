package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"eventactivities/internal/domain"
	"eventactivities/internal/scheduling"
)

type activityService struct {
	uow            domain.UnitOfWork
	detector       *scheduling.Detector
	indexer        categoryIndexer
	contextTimeout time.Duration
	now            func() time.Time
}

func NewActivityService(uow domain.UnitOfWork, detector *scheduling.Detector, timeout time.Duration) domain.ActivityService {
	return &activityService{
		uow:            uow,
		detector:       detector,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *activityService) Create(ctx context.Context, activity *domain.Activity, callerID string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "ActivityService.Create", attribute.String("event.id", activity.EventID))
	defer func() { endSpan(span, err) }()

	if err := validateActivity(activity); err != nil {
		return err
	}

	return s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		event, err := getEvent(ctx, store, activity.EventID)
		if err != nil {
			return err
		}
		if !event.IsResponsible(callerID) {
			return domain.ErrForbidden
		}
		if err := checkReferences(ctx, store, activity); err != nil {
			return err
		}

		now := s.now()
		report, err := s.detector.Check(ctx, store.Schedules(), scheduling.CheckRequest{
			ActivityTitle: activity.Title,
			Schedules:     activity.Schedules,
			TeacherIDs:    activity.TeachingUserIDs,
			Now:           now,
		})
		if err != nil {
			return fmt.Errorf("check conflicts: %w", err)
		}
		if err := report.Err(); err != nil {
			return err
		}

		index, err := s.indexer.next(ctx, store, activity.EventID, activity.CategoryID)
		if err != nil {
			return err
		}
		activity.IndexInCategory = index
		activity.ReadyForCertificate = false
		activity.CreatedAt = now
		activity.UpdatedAt = now
		if err := store.Activities().Create(ctx, activity); err != nil {
			return fmt.Errorf("create activity: %w", err)
		}
		return nil
	})
}

// Update replaces the editable fields and the schedule list of an existing activity.
// Registries are dropped when any schedule interval changes.
func (s *activityService) Update(ctx context.Context, activity *domain.Activity, callerID string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "ActivityService.Update", attribute.String("activity.id", activity.ID))
	defer func() { endSpan(span, err) }()

	if err := validateActivity(activity); err != nil {
		return err
	}

	return s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		existing, err := getActivity(ctx, store, activity.ID)
		if err != nil {
			return err
		}
		if activity.EventID == "" {
			activity.EventID = existing.EventID
		}
		if activity.EventID != existing.EventID {
			return domain.ErrEventChangeRestriction
		}
		event, err := getEvent(ctx, store, existing.EventID)
		if err != nil {
			return err
		}
		if !event.IsResponsible(callerID) {
			return domain.ErrForbidden
		}
		if err := checkReferences(ctx, store, activity); err != nil {
			return err
		}
		dropForeignScheduleIDs(existing.Schedules, activity.Schedules)

		now := s.now()
		report, err := s.detector.Check(ctx, store.Schedules(), scheduling.CheckRequest{
			ActivityID:    activity.ID,
			ActivityTitle: activity.Title,
			Schedules:     activity.Schedules,
			TeacherIDs:    activity.TeachingUserIDs,
			Now:           now,
		})
		if err != nil {
			return fmt.Errorf("check conflicts: %w", err)
		}
		if err := report.Err(); err != nil {
			return err
		}

		slotsChanged := !domain.SameSlots(existing.Schedules, activity.Schedules)
		if !slotsChanged {
			for i, sch := range activity.Schedules {
				sch.ID = existing.Schedules[i].ID
			}
		}

		activity.IndexInCategory = existing.IndexInCategory
		if activity.CategoryID != existing.CategoryID {
			index, err := s.indexer.move(ctx, store, existing.EventID, existing.CategoryID, activity.CategoryID, existing.IndexInCategory)
			if err != nil {
				return err
			}
			activity.IndexInCategory = index
		}
		activity.ReadyForCertificate = existing.ReadyForCertificate
		activity.CreatedAt = existing.CreatedAt
		activity.UpdatedAt = now

		if slotsChanged {
			if err := store.Registries().DeleteByActivityID(ctx, activity.ID); err != nil {
				return fmt.Errorf("delete registries: %w", err)
			}
		}
		if err := store.Activities().Update(ctx, activity); err != nil {
			return fmt.Errorf("update activity: %w", err)
		}
		return nil
	})
}

func (s *activityService) Delete(ctx context.Context, activityID, callerID string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := startSpan(ctx, "ActivityService.Delete", attribute.String("activity.id", activityID))
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
		if !event.IsResponsible(callerID) {
			return domain.ErrForbidden
		}
		registries, err := store.Registries().CountByActivityID(ctx, activityID)
		if err != nil {
			return fmt.Errorf("count registries: %w", err)
		}
		if registries > 0 {
			return domain.ErrActivityHasRegistries
		}
		if event.Ongoing(s.now()) {
			return domain.ErrEventChangeRestriction
		}
		return s.indexer.release(ctx, store, activity.EventID, activity.CategoryID, activity.IndexInCategory, func(ctx context.Context) error {
			if err := store.Activities().Delete(ctx, activityID); err != nil {
				return fmt.Errorf("delete activity: %w", err)
			}
			return nil
		})
	})
}

func (s *activityService) Get(ctx context.Context, activityID string) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var activity *domain.Activity
	err := s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		var err error
		activity, err = getActivity(ctx, store, activityID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var activities []*domain.Activity
	err := s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		if _, err := getEvent(ctx, store, eventID); err != nil {
			return err
		}
		var err error
		activities, err = store.Activities().ListByEventID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return activities, nil
}

func (s *activityService) SetReadyForCertificate(ctx context.Context, activityID string, ready bool, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		activity, err := getActivity(ctx, store, activityID)
		if err != nil {
			return err
		}
		event, err := getEvent(ctx, store, activity.EventID)
		if err != nil {
			return err
		}
		if !event.IsResponsible(callerID) && !activity.IsResponsible(callerID) {
			return domain.ErrForbidden
		}
		if err := store.Activities().SetReadyForCertificate(ctx, activityID, ready); err != nil {
			return fmt.Errorf("set activity ready for certificate: %w", err)
		}
		return nil
	})
}

// validateActivity checks the activity shape before any storage access.
func validateActivity(a *domain.Activity) error {
	a.Title = strings.TrimSpace(a.Title)
	if len(a.Schedules) == 0 || len(a.ResponsibleUserIDs) == 0 {
		return domain.ErrIncompleteActivity
	}
	if a.CategoryID == "" {
		return fmt.Errorf("%w: category_id is required", domain.ErrInvalidInput)
	}
	if errs := a.Validate(); len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}

// checkReferences confirms that the category, rooms and users named by the activity exist.
func checkReferences(ctx context.Context, store domain.Store, a *domain.Activity) error {
	if _, err := store.Categories().GetByID(ctx, a.CategoryID); err != nil {
		return notFoundOr(err, "get category")
	}

	roomIDs := a.RoomIDs()
	if len(roomIDs) > 0 {
		rooms, err := store.Rooms().ListByIDs(ctx, roomIDs)
		if err != nil {
			return fmt.Errorf("list rooms: %w", err)
		}
		if len(rooms) != len(roomIDs) {
			return domain.ErrNotFound
		}
	}

	return checkUsers(ctx, store, distinct(a.ResponsibleUserIDs, a.TeachingUserIDs))
}

// checkUsers returns ErrNotFound unless every id, given without repeats, is in the user directory.
func checkUsers(ctx context.Context, store domain.Store, userIDs []string) error {
	users, err := store.Users().ListByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) != len(userIDs) {
		return domain.ErrNotFound
	}
	return nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func distinct(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// dropForeignScheduleIDs clears candidate ids that are not schedules of the stored activity,
// and repeated ids, so those candidates are stored as new schedules.
func dropForeignScheduleIDs(owned, candidates []*domain.Schedule) {
	own := make(map[string]bool, len(owned))
	for _, s := range owned {
		own[s.ID] = true
	}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.ID == "" {
			continue
		}
		if !own[c.ID] || seen[c.ID] {
			c.ID = ""
			continue
		}
		seen[c.ID] = true
	}
}
