package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventactivities/internal/domain"
)

type registryRepository struct {
	DB DBTX
}

func NewRegistryRepository(db DBTX) domain.RegistryRepository {
	return &registryRepository{DB: db}
}

const registryColumns = `id, activity_id, user_id, registry_date, ready_for_certificate, rating`

func scanRegistry(row interface{ Scan(...any) error }) (*domain.Registry, error) {
	reg := &domain.Registry{}
	var rating sql.NullInt64
	if err := row.Scan(&reg.ID, &reg.ActivityID, &reg.UserID, &reg.RegistryDate, &reg.ReadyForCertificate, &rating); err != nil {
		return nil, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		reg.Rating = &v
	}
	return reg, nil
}

func (r *registryRepository) Create(ctx context.Context, reg *domain.Registry) error {
	query := `
		INSERT INTO registries (activity_id, user_id, registry_date, ready_for_certificate)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.ActivityID, reg.UserID, reg.RegistryDate, reg.ReadyForCertificate).Scan(&reg.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	for _, p := range reg.Presences {
		p.RegistryID = reg.ID
		err := r.DB.QueryRowContext(ctx, `
			INSERT INTO presences (registry_id, schedule_id, is_present)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.RegistryID, p.ScheduleID, p.IsPresent).Scan(&p.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *registryRepository) GetByID(ctx context.Context, id string) (*domain.Registry, error) {
	return r.getOne(ctx, `SELECT `+registryColumns+` FROM registries WHERE id = $1`, id)
}

func (r *registryRepository) GetByActivityAndUser(ctx context.Context, activityID, userID string) (*domain.Registry, error) {
	return r.getOne(ctx, `SELECT `+registryColumns+` FROM registries WHERE activity_id = $1 AND user_id = $2`, activityID, userID)
}

func (r *registryRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Registry, error) {
	reg, err := scanRegistry(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachPresences(ctx, []*domain.Registry{reg}); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *registryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM registries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *registryRepository) DeleteByActivityID(ctx context.Context, activityID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM registries WHERE activity_id = $1`, activityID)
	return err
}

func (r *registryRepository) CountByActivityID(ctx context.Context, activityID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registries WHERE activity_id = $1`, activityID).Scan(&n)
	return n, err
}

func (r *registryRepository) ListByActivityID(ctx context.Context, activityID string) ([]*domain.Registry, error) {
	return r.list(ctx, `SELECT `+registryColumns+` FROM registries WHERE activity_id = $1 ORDER BY registry_date, id`, activityID)
}

func (r *registryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registry, error) {
	return r.list(ctx, `SELECT `+registryColumns+` FROM registries WHERE user_id = $1 ORDER BY registry_date, id`, userID)
}

func (r *registryRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Registry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registry, 0)
	for rows.Next() {
		reg, err := scanRegistry(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachPresences(ctx, regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registryRepository) attachPresences(ctx context.Context, regs []*domain.Registry) error {
	if len(regs) == 0 {
		return nil
	}
	ids := make([]string, len(regs))
	byID := make(map[string]*domain.Registry, len(regs))
	for i, reg := range regs {
		ids[i] = reg.ID
		byID[reg.ID] = reg
		reg.Presences = make([]*domain.Presence, 0)
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.registry_id, p.schedule_id, p.is_present
		FROM presences p
		JOIN schedules s ON s.id = p.schedule_id
		WHERE p.registry_id = ANY($1)
		ORDER BY p.registry_id, s.position
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		p := &domain.Presence{}
		if err := rows.Scan(&p.ID, &p.RegistryID, &p.ScheduleID, &p.IsPresent); err != nil {
			return err
		}
		if reg, ok := byID[p.RegistryID]; ok {
			reg.Presences = append(reg.Presences, p)
		}
	}
	return rows.Err()
}

func (r *registryRepository) SetPresence(ctx context.Context, registryID, scheduleID string, present bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE presences SET is_present = $3 WHERE registry_id = $1 AND schedule_id = $2`,
		registryID, scheduleID, present)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *registryRepository) SetReadyForCertificate(ctx context.Context, registryID string, ready bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE registries SET ready_for_certificate = $2 WHERE id = $1`, registryID, ready)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *registryRepository) SetRating(ctx context.Context, registryID string, rating int) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE registries SET rating = $2 WHERE id = $1`, registryID, rating)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *registryRepository) ListReadyEmailsByEventID(ctx context.Context, eventID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.email
		FROM registries g
		JOIN activities a ON a.id = g.activity_id
		JOIN users u ON u.id = g.user_id
		WHERE a.event_id = $1 AND g.ready_for_certificate
		GROUP BY u.email
		ORDER BY MIN(g.registry_date), u.email
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
