package memory

import (
	"context"

	"github.com/google/uuid"

	"eventactivities/internal/domain"
)

type eventRepository struct {
	data *state
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	e.ID = uuid.NewString()
	r.data.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := r.data.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := r.data.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data.events[e.ID] = cloneEvent(e)
	return nil
}

type activityRepository struct {
	data *state
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	a.ID = uuid.NewString()
	for _, s := range a.Schedules {
		s.ID = uuid.NewString()
		s.ActivityID = a.ID
	}
	r.data.activities[a.ID] = cloneActivity(a)
	r.data.activityOrder = append(r.data.activityOrder, a.ID)
	return nil
}

// Update replaces the activity and its schedule list. Schedules without an id, or with an
// id the activity does not own, are stored as new.
// Presences of schedules that are no longer listed are dropped.
func (r *activityRepository) Update(ctx context.Context, a *domain.Activity) error {
	stored, ok := r.data.activities[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	owned := make(map[string]bool, len(stored.Schedules))
	for _, s := range stored.Schedules {
		owned[s.ID] = true
	}
	kept := make(map[string]struct{}, len(a.Schedules))
	for _, s := range a.Schedules {
		if _, dup := kept[s.ID]; s.ID == "" || !owned[s.ID] || dup {
			s.ID = uuid.NewString()
		}
		s.ActivityID = a.ID
		kept[s.ID] = struct{}{}
	}
	for _, reg := range r.data.registries {
		if reg.ActivityID != a.ID {
			continue
		}
		presences := reg.Presences[:0]
		for _, p := range reg.Presences {
			if _, ok := kept[p.ScheduleID]; ok {
				presences = append(presences, p)
			}
		}
		reg.Presences = presences
	}
	r.data.activities[a.ID] = cloneActivity(a)
	return nil
}

// Delete removes the activity with its schedules and registries.
func (r *activityRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.data.activities[id]; !ok {
		return domain.ErrNotFound
	}
	(&registryRepository{data: r.data}).deleteWhere(func(reg *domain.Registry) bool { return reg.ActivityID == id })
	delete(r.data.activities, id)
	r.data.activityOrder = removeID(r.data.activityOrder, id)
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	a, ok := r.data.activities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneActivity(a), nil
}

func (r *activityRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	out := make([]*domain.Activity, 0)
	for _, id := range r.data.activityOrder {
		if a := r.data.activities[id]; a.EventID == eventID {
			out = append(out, cloneActivity(a))
		}
	}
	return out, nil
}

func (r *activityRepository) CountInCategory(ctx context.Context, eventID, categoryID string) (int, error) {
	n := 0
	for _, a := range r.data.activities {
		if a.EventID == eventID && a.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *activityRepository) ShiftCategoryIndex(ctx context.Context, eventID, categoryID string, after int) error {
	for _, a := range r.data.activities {
		if a.EventID == eventID && a.CategoryID == categoryID && a.IndexInCategory > after {
			a.IndexInCategory--
		}
	}
	return nil
}

func (r *activityRepository) SetReadyForCertificate(ctx context.Context, id string, ready bool) error {
	a, ok := r.data.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.ReadyForCertificate = ready
	return nil
}

type scheduleFinder struct {
	data *state
}

// FindOverlapping returns, in activity then schedule order, the schedules of other activities
// of active events that match the filter key and intersect the filter window.
func (f *scheduleFinder) FindOverlapping(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.ScheduleMatch, error) {
	out := make([]*domain.ScheduleMatch, 0)
	for _, id := range f.data.activityOrder {
		a := f.data.activities[id]
		if a.ID == filter.ExcludeActivityID {
			continue
		}
		event, ok := f.data.events[a.EventID]
		if !ok || !event.Active(filter.Now) {
			continue
		}
		if !f.matchesKey(a, filter) {
			continue
		}
		for _, s := range a.Schedules {
			if filter.RoomID != "" && (s.RoomID == nil || *s.RoomID != filter.RoomID) {
				continue
			}
			if !s.StartDate.Before(filter.End) || !s.EndDate().After(filter.Start) {
				continue
			}
			match := &domain.ScheduleMatch{
				Schedule:      cloneSchedule(s),
				ActivityTitle: a.Title,
				EventName:     event.Name,
			}
			if s.RoomID != nil {
				if room, ok := f.data.rooms[*s.RoomID]; ok {
					code := room.Code
					match.RoomCode = &code
				}
			}
			out = append(out, match)
		}
	}
	return out, nil
}

func (f *scheduleFinder) matchesKey(a *domain.Activity, filter domain.ScheduleFilter) bool {
	switch {
	case filter.TeacherID != "":
		for _, id := range a.TeachingUserIDs {
			if id == filter.TeacherID {
				return true
			}
		}
		return false
	case filter.RegisteredUserID != "":
		for _, reg := range f.data.registries {
			if reg.ActivityID == a.ID && reg.UserID == filter.RegisteredUserID {
				return true
			}
		}
		return false
	}
	return filter.RoomID != ""
}

type registryRepository struct {
	data *state
}

func (r *registryRepository) Create(ctx context.Context, reg *domain.Registry) error {
	for _, existing := range r.data.registries {
		if existing.ActivityID == reg.ActivityID && existing.UserID == reg.UserID {
			return domain.ErrAlreadyRegistered
		}
	}
	reg.ID = uuid.NewString()
	for _, p := range reg.Presences {
		p.ID = uuid.NewString()
		p.RegistryID = reg.ID
	}
	r.data.registries[reg.ID] = cloneRegistry(reg)
	r.data.registryOrder = append(r.data.registryOrder, reg.ID)
	return nil
}

func (r *registryRepository) GetByID(ctx context.Context, id string) (*domain.Registry, error) {
	reg, ok := r.data.registries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRegistry(reg), nil
}

func (r *registryRepository) GetByActivityAndUser(ctx context.Context, activityID, userID string) (*domain.Registry, error) {
	for _, id := range r.data.registryOrder {
		if reg := r.data.registries[id]; reg.ActivityID == activityID && reg.UserID == userID {
			return cloneRegistry(reg), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *registryRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.data.registries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data.registries, id)
	r.data.registryOrder = removeID(r.data.registryOrder, id)
	return nil
}

func (r *registryRepository) DeleteByActivityID(ctx context.Context, activityID string) error {
	r.deleteWhere(func(reg *domain.Registry) bool { return reg.ActivityID == activityID })
	return nil
}

func (r *registryRepository) deleteWhere(match func(*domain.Registry) bool) {
	order := r.data.registryOrder[:0]
	for _, id := range r.data.registryOrder {
		if match(r.data.registries[id]) {
			delete(r.data.registries, id)
			continue
		}
		order = append(order, id)
	}
	r.data.registryOrder = order
}

func (r *registryRepository) CountByActivityID(ctx context.Context, activityID string) (int, error) {
	n := 0
	for _, reg := range r.data.registries {
		if reg.ActivityID == activityID {
			n++
		}
	}
	return n, nil
}

func (r *registryRepository) ListByActivityID(ctx context.Context, activityID string) ([]*domain.Registry, error) {
	return r.list(func(reg *domain.Registry) bool { return reg.ActivityID == activityID }), nil
}

func (r *registryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registry, error) {
	return r.list(func(reg *domain.Registry) bool { return reg.UserID == userID }), nil
}

func (r *registryRepository) list(match func(*domain.Registry) bool) []*domain.Registry {
	out := make([]*domain.Registry, 0)
	for _, id := range r.data.registryOrder {
		if reg := r.data.registries[id]; match(reg) {
			out = append(out, cloneRegistry(reg))
		}
	}
	return out
}

func (r *registryRepository) SetPresence(ctx context.Context, registryID, scheduleID string, present bool) error {
	reg, ok := r.data.registries[registryID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, p := range reg.Presences {
		if p.ScheduleID == scheduleID {
			p.IsPresent = present
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *registryRepository) SetReadyForCertificate(ctx context.Context, registryID string, ready bool) error {
	reg, ok := r.data.registries[registryID]
	if !ok {
		return domain.ErrNotFound
	}
	reg.ReadyForCertificate = ready
	return nil
}

func (r *registryRepository) SetRating(ctx context.Context, registryID string, rating int) error {
	reg, ok := r.data.registries[registryID]
	if !ok {
		return domain.ErrNotFound
	}
	reg.Rating = &rating
	return nil
}

func (r *registryRepository) ListReadyEmailsByEventID(ctx context.Context, eventID string) ([]string, error) {
	seen := make(map[string]struct{})
	emails := make([]string, 0)
	for _, id := range r.data.registryOrder {
		reg := r.data.registries[id]
		if !reg.ReadyForCertificate {
			continue
		}
		a, ok := r.data.activities[reg.ActivityID]
		if !ok || a.EventID != eventID {
			continue
		}
		u, ok := r.data.users[reg.UserID]
		if !ok {
			continue
		}
		if _, dup := seen[u.Email]; dup {
			continue
		}
		seen[u.Email] = struct{}{}
		emails = append(emails, u.Email)
	}
	return emails, nil
}

type roomRepository struct {
	data *state
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	room, ok := r.data.rooms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *room
	return &c, nil
}

func (r *roomRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Room, error) {
	out := make([]*domain.Room, 0, len(ids))
	for _, id := range ids {
		if room, ok := r.data.rooms[id]; ok {
			c := *room
			out = append(out, &c)
		}
	}
	return out, nil
}

type categoryRepository struct {
	data *state
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.ActivityCategory, error) {
	c, ok := r.data.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	category := *c
	return &category, nil
}

type userRepository struct {
	data *state
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.data.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := *u
	return &user, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.data.users[id]; ok {
			user := *u
			out = append(out, &user)
		}
	}
	return out, nil
}
