package domain

import "context"

// Store exposes the repositories bound to one unit of work.
type Store interface {
	Events() EventRepository
	Activities() ActivityRepository
	Schedules() ScheduleFinder
	Registries() RegistryRepository
	Rooms() RoomRepository
	Categories() CategoryRepository
	Users() UserRepository
	// LockCategory blocks until no other unit of work holds the (eventID, categoryID) index lock and
	// keeps it until the current unit of work ends.
	LockCategory(ctx context.Context, eventID, categoryID string) error
}

// UnitOfWork runs fn atomically: every write made through store is committed when fn returns nil
// and discarded otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
