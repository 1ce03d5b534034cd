// Package memory is a single-process implementation of the domain storage ports.
// Units of work are serialised: each one works on a private copy of the data that
// replaces the shared copy only when it succeeds.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"eventactivities/internal/domain"
)

// state is the whole data set. Slices keep insertion order for listings.
type state struct {
	events        map[string]*domain.Event
	activities    map[string]*domain.Activity
	activityOrder []string
	registries    map[string]*domain.Registry
	registryOrder []string
	rooms         map[string]*domain.Room
	categories    map[string]*domain.ActivityCategory
	users         map[string]*domain.User
}

func newState() *state {
	return &state{
		events:     make(map[string]*domain.Event),
		activities: make(map[string]*domain.Activity),
		registries: make(map[string]*domain.Registry),
		rooms:      make(map[string]*domain.Room),
		categories: make(map[string]*domain.ActivityCategory),
		users:      make(map[string]*domain.User),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, e := range s.events {
		c.events[id] = cloneEvent(e)
	}
	for id, a := range s.activities {
		c.activities[id] = cloneActivity(a)
	}
	for id, r := range s.registries {
		c.registries[id] = cloneRegistry(r)
	}
	for id, r := range s.rooms {
		room := *r
		c.rooms[id] = &room
	}
	for id, cat := range s.categories {
		category := *cat
		c.categories[id] = &category
	}
	for id, u := range s.users {
		user := *u
		c.users[id] = &user
	}
	c.activityOrder = append([]string(nil), s.activityOrder...)
	c.registryOrder = append([]string(nil), s.registryOrder...)
	return c
}

// Store holds the data set and hands out units of work over it.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Do runs fn on a private copy of the data set. The copy replaces the shared data set only
// when fn returns nil. Units of work never run concurrently, which also makes every
// LockCategory call trivially held until the unit of work ends.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, store domain.Store) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := &tx{data: s.data.clone()}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unit of work panicked: %v", p)
		}
	}()
	if err := fn(ctx, work); err != nil {
		return err
	}
	s.data = work.data
	return nil
}

// SeedUser adds or replaces a user of the directory.
func (s *Store) SeedUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	user := *u
	s.data.users[u.ID] = &user
}

// SeedRoom adds or replaces a room.
func (s *Store) SeedRoom(r *domain.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	room := *r
	s.data.rooms[r.ID] = &room
}

// SeedCategory adds or replaces an activity category.
func (s *Store) SeedCategory(c *domain.ActivityCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	category := *c
	s.data.categories[c.ID] = &category
}

// tx implements domain.Store over the private copy of one unit of work.
type tx struct {
	data *state
}

func (t *tx) Events() domain.EventRepository { return &eventRepository{data: t.data} }
func (t *tx) Activities() domain.ActivityRepository { return &activityRepository{data: t.data} }
func (t *tx) Schedules() domain.ScheduleFinder { return &scheduleFinder{data: t.data} }
func (t *tx) Registries() domain.RegistryRepository { return &registryRepository{data: t.data} }
func (t *tx) Rooms() domain.RoomRepository { return &roomRepository{data: t.data} }
func (t *tx) Categories() domain.CategoryRepository { return &categoryRepository{data: t.data} }
func (t *tx) Users() domain.UserRepository { return &userRepository{data: t.data} }
func (t *tx) LockCategory(ctx context.Context, eventID, categoryID string) error { return ctx.Err() }

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	c.ResponsibleUserIDs = append([]string(nil), e.ResponsibleUserIDs...)
	return &c
}

func cloneActivity(a *domain.Activity) *domain.Activity {
	c := *a
	c.ResponsibleUserIDs = append([]string(nil), a.ResponsibleUserIDs...)
	c.TeachingUserIDs = append([]string(nil), a.TeachingUserIDs...)
	c.Schedules = make([]*domain.Schedule, len(a.Schedules))
	for i, s := range a.Schedules {
		c.Schedules[i] = cloneSchedule(s)
	}
	return &c
}

func cloneSchedule(s *domain.Schedule) *domain.Schedule {
	c := *s
	if s.RoomID != nil {
		room := *s.RoomID
		c.RoomID = &room
	}
	if s.URL != nil {
		url := *s.URL
		c.URL = &url
	}
	return &c
}

func cloneRegistry(r *domain.Registry) *domain.Registry {
	c := *r
	if r.Rating != nil {
		rating := *r.Rating
		c.Rating = &rating
	}
	c.Presences = make([]*domain.Presence, len(r.Presences))
	for i, p := range r.Presences {
		presence := *p
		c.Presences[i] = &presence
	}
	return &c
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
