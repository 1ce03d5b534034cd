package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventactivities/internal/domain"
)

type activityRepository struct {
	DB DBTX
}

func NewActivityRepository(db DBTX) domain.ActivityRepository {
	return &activityRepository{DB: db}
}

const activityColumns = `
	a.id, a.event_id, a.category_id, a.title, a.description, a.total_vacancy, a.workload_in_minutes,
	a.ready_for_certificate, a.index_in_category, a.created_at, a.updated_at,
	ARRAY(SELECT ar.user_id FROM activity_responsibles ar WHERE ar.activity_id = a.id ORDER BY ar.user_id),
	ARRAY(SELECT t.user_id FROM activity_teachers t WHERE t.activity_id = a.id ORDER BY t.user_id)
`

func scanActivity(row interface{ Scan(...any) error }) (*domain.Activity, error) {
	a := &domain.Activity{}
	err := row.Scan(
		&a.ID, &a.EventID, &a.CategoryID, &a.Title, &a.Description, &a.TotalVacancy, &a.WorkloadInMinutes,
		&a.ReadyForCertificate, &a.IndexInCategory, &a.CreatedAt, &a.UpdatedAt,
		pq.Array(&a.ResponsibleUserIDs), pq.Array(&a.TeachingUserIDs),
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	query := `
		INSERT INTO activities (event_id, category_id, title, description, total_vacancy, workload_in_minutes,
			ready_for_certificate, index_in_category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		a.EventID, a.CategoryID, a.Title, a.Description, a.TotalVacancy, a.WorkloadInMinutes,
		a.ReadyForCertificate, a.IndexInCategory, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return err
	}
	if err := r.insertLinks(ctx, a); err != nil {
		return err
	}
	for i, s := range a.Schedules {
		s.ActivityID = a.ID
		if err := r.insertSchedule(ctx, s, i); err != nil {
			return err
		}
	}
	return nil
}

// Update rewrites the activity row and its user links. Listed schedules with an id are updated in
// place, the others inserted; schedules missing from the list are removed with their presences.
func (r *activityRepository) Update(ctx context.Context, a *domain.Activity) error {
	query := `
		UPDATE activities
		SET category_id = $2, title = $3, description = $4, total_vacancy = $5, workload_in_minutes = $6,
			ready_for_certificate = $7, index_in_category = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		a.ID, a.CategoryID, a.Title, a.Description, a.TotalVacancy, a.WorkloadInMinutes,
		a.ReadyForCertificate, a.IndexInCategory, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if err := expectRow(res); err != nil {
		return err
	}

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM activity_responsibles WHERE activity_id = $1`, a.ID); err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM activity_teachers WHERE activity_id = $1`, a.ID); err != nil {
		return err
	}
	if err := r.insertLinks(ctx, a); err != nil {
		return err
	}

	kept := make([]string, 0, len(a.Schedules))
	for _, s := range a.Schedules {
		if s.ID != "" {
			kept = append(kept, s.ID)
		}
	}
	if _, err := r.DB.ExecContext(ctx,
		`DELETE FROM schedules WHERE activity_id = $1 AND NOT (id = ANY($2))`,
		a.ID, pq.Array(kept)); err != nil {
		return err
	}
	for i, s := range a.Schedules {
		s.ActivityID = a.ID
		if s.ID == "" {
			if err := r.insertSchedule(ctx, s, i); err != nil {
				return err
			}
			continue
		}
		res, err := r.DB.ExecContext(ctx, `
			UPDATE schedules
			SET position = $3, start_date = $4, duration_in_minutes = $5, room_id = $6, url = $7
			WHERE id = $1 AND activity_id = $2
		`, s.ID, a.ID, i, s.StartDate, s.DurationInMinutes, nullString(s.RoomID), nullString(s.URL))
		if err != nil {
			return err
		}
		// An id of another activity or an unknown id matches no row.
		if err := expectRow(res); err != nil {
			return fmt.Errorf("update schedule %s: %w", s.ID, err)
		}
	}
	return nil
}

func (r *activityRepository) insertLinks(ctx context.Context, a *domain.Activity) error {
	if _, err := r.DB.ExecContext(ctx,
		`INSERT INTO activity_responsibles (activity_id, user_id) SELECT $1, unnest($2::text[])`,
		a.ID, pq.Array(a.ResponsibleUserIDs)); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO activity_teachers (activity_id, user_id) SELECT $1, unnest($2::text[])`,
		a.ID, pq.Array(a.TeachingUserIDs))
	return err
}

func (r *activityRepository) insertSchedule(ctx context.Context, s *domain.Schedule, position int) error {
	query := `
		INSERT INTO schedules (activity_id, position, start_date, duration_in_minutes, room_id, url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.ActivityID, position, s.StartDate, s.DurationInMinutes, nullString(s.RoomID), nullString(s.URL),
	).Scan(&s.ID)
}

// Delete removes the activity; schedules, links, registries and presences cascade.
func (r *activityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.id = $1`
	a, err := scanActivity(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	schedules, err := r.schedulesByActivity(ctx, []string{a.ID})
	if err != nil {
		return nil, err
	}
	a.Schedules = schedules[a.ID]
	return a, nil
}

func (r *activityRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.event_id = $1 ORDER BY a.created_at, a.id`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	ids := make([]string, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return activities, nil
	}
	schedules, err := r.schedulesByActivity(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range activities {
		a.Schedules = schedules[a.ID]
	}
	return activities, nil
}

func (r *activityRepository) schedulesByActivity(ctx context.Context, activityIDs []string) (map[string][]*domain.Schedule, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, activity_id, start_date, duration_in_minutes, room_id, url
		FROM schedules
		WHERE activity_id = ANY($1)
		ORDER BY activity_id, position
	`, pq.Array(activityIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]*domain.Schedule, len(activityIDs))
	for rows.Next() {
		s := &domain.Schedule{}
		var roomID, url sql.NullString
		if err := rows.Scan(&s.ID, &s.ActivityID, &s.StartDate, &s.DurationInMinutes, &roomID, &url); err != nil {
			return nil, err
		}
		s.RoomID = stringPtr(roomID)
		s.URL = stringPtr(url)
		out[s.ActivityID] = append(out[s.ActivityID], s)
	}
	return out, rows.Err()
}

func (r *activityRepository) CountInCategory(ctx context.Context, eventID, categoryID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activities WHERE event_id = $1 AND category_id = $2`,
		eventID, categoryID).Scan(&n)
	return n, err
}

func (r *activityRepository) ShiftCategoryIndex(ctx context.Context, eventID, categoryID string, after int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE activities
		SET index_in_category = index_in_category - 1
		WHERE event_id = $1 AND category_id = $2 AND index_in_category > $3
	`, eventID, categoryID, after)
	return err
}

func (r *activityRepository) SetReadyForCertificate(ctx context.Context, id string, ready bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE activities SET ready_for_certificate = $2 WHERE id = $1`, id, ready)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
