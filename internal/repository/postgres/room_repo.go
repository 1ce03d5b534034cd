package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventactivities/internal/domain"
)

type roomRepository struct {
	DB DBTX
}

func NewRoomRepository(db DBTX) domain.RoomRepository {
	return &roomRepository{DB: db}
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	room := &domain.Room{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, code, capacity, description FROM rooms WHERE id = $1`, id,
	).Scan(&room.ID, &room.Code, &room.Capacity, &room.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Room, error) {
	rooms := make([]*domain.Room, 0, len(ids))
	if len(ids) == 0 {
		return rooms, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, code, capacity, description FROM rooms WHERE id = ANY($1) ORDER BY code`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.Code, &room.Capacity, &room.Description); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

type categoryRepository struct {
	DB DBTX
}

func NewCategoryRepository(db DBTX) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.ActivityCategory, error) {
	c := &domain.ActivityCategory{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, code, description FROM activity_categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
