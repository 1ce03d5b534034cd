package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventactivities/internal/domain"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UnitOfWork runs every unit of work in its own transaction.
type UnitOfWork struct {
	DB *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{DB: db}
}

// Do begins a transaction, hands fn a Store bound to it and commits when fn returns nil.
// Errors and panics roll the transaction back.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store domain.Store) error) (err error) {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, NewStore(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type store struct {
	db DBTX
}

// NewStore returns a domain.Store whose repositories all run on db.
func NewStore(db DBTX) domain.Store {
	return &store{db: db}
}

func (s *store) Events() domain.EventRepository { return NewEventRepository(s.db) }
func (s *store) Activities() domain.ActivityRepository { return NewActivityRepository(s.db) }
func (s *store) Schedules() domain.ScheduleFinder { return NewScheduleFinder(s.db) }
func (s *store) Registries() domain.RegistryRepository { return NewRegistryRepository(s.db) }
func (s *store) Rooms() domain.RoomRepository { return NewRoomRepository(s.db) }
func (s *store) Categories() domain.CategoryRepository { return NewCategoryRepository(s.db) }
func (s *store) Users() domain.UserRepository { return NewUserRepository(s.db) }

// LockCategory takes a transaction-scoped advisory lock on the (event, category) pair.
func (s *store) LockCategory(ctx context.Context, eventID, categoryID string) error {
	_, err := s.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext('activity_category:' || $1::text || ':' || $2::text))`, eventID, categoryID)
	return err
}
