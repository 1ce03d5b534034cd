package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventactivities/internal/domain"
)

type eventRepository struct {
	DB DBTX
}

func NewEventRepository(db DBTX) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, start_date, end_date, registry_start_date, registry_end_date,
			status_visible, status_active, category_id, area_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.StartDate, e.EndDate, e.RegistryStartDate, e.RegistryEndDate,
		e.StatusVisible, e.StatusActive, e.CategoryID, e.AreaID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO event_responsibles (event_id, user_id) SELECT $1, unnest($2::text[])`,
		e.ID, pq.Array(e.ResponsibleUserIDs))
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT e.id, e.name, e.start_date, e.end_date, e.registry_start_date, e.registry_end_date,
			e.status_visible, e.status_active, e.category_id, e.area_id, e.created_at, e.updated_at,
			ARRAY(SELECT er.user_id FROM event_responsibles er WHERE er.event_id = e.id ORDER BY er.user_id)
		FROM events e
		WHERE e.id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.StartDate, &e.EndDate, &e.RegistryStartDate, &e.RegistryEndDate,
		&e.StatusVisible, &e.StatusActive, &e.CategoryID, &e.AreaID, &e.CreatedAt, &e.UpdatedAt,
		pq.Array(&e.ResponsibleUserIDs),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Update writes the scalar fields of the event. Responsible users are not changed.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, start_date = $3, end_date = $4, registry_start_date = $5, registry_end_date = $6,
			status_visible = $7, status_active = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.StartDate, e.EndDate, e.RegistryStartDate, e.RegistryEndDate,
		e.StatusVisible, e.StatusActive, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// expectRow maps an exec that touched no row to ErrNotFound.
func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
