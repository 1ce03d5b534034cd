package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventactivities/internal/domain"
)

type scheduleFinder struct {
	DB DBTX
}

func NewScheduleFinder(db DBTX) domain.ScheduleFinder {
	return &scheduleFinder{DB: db}
}

const overlappingSchedulesQuery = `
	SELECT s.id, s.activity_id, s.start_date, s.duration_in_minutes, s.room_id, s.url, a.title, e.name, r.code
	FROM schedules s
	JOIN activities a ON a.id = s.activity_id
	JOIN events e ON e.id = a.event_id
	LEFT JOIN rooms r ON r.id = s.room_id
	WHERE e.end_date > $1
		AND s.start_date < $2
		AND s.start_date + make_interval(mins => s.duration_in_minutes) > $3
		AND a.id <> $4
		AND %s
	ORDER BY s.start_date, s.id
`

// FindOverlapping returns the schedules intersecting [filter.Start, filter.End) of activities in
// events that have not ended at filter.Now, keyed by teacher, room or registered user.
func (f *scheduleFinder) FindOverlapping(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.ScheduleMatch, error) {
	var keyClause, key string
	switch {
	case filter.TeacherID != "":
		keyClause = `EXISTS (SELECT 1 FROM activity_teachers t WHERE t.activity_id = a.id AND t.user_id = $5)`
		key = filter.TeacherID
	case filter.RoomID != "":
		keyClause = `s.room_id = $5`
		key = filter.RoomID
	case filter.RegisteredUserID != "":
		keyClause = `EXISTS (SELECT 1 FROM registries g WHERE g.activity_id = a.id AND g.user_id = $5)`
		key = filter.RegisteredUserID
	default:
		return nil, domain.ErrInvalidInput
	}

	query := fmt.Sprintf(overlappingSchedulesQuery, keyClause)
	rows, err := f.DB.QueryContext(ctx, query, filter.Now, filter.End, filter.Start, filter.ExcludeActivityID, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*domain.ScheduleMatch, 0)
	for rows.Next() {
		s := &domain.Schedule{}
		m := &domain.ScheduleMatch{Schedule: s}
		var roomID, url, roomCode sql.NullString
		if err := rows.Scan(&s.ID, &s.ActivityID, &s.StartDate, &s.DurationInMinutes, &roomID, &url,
			&m.ActivityTitle, &m.EventName, &roomCode); err != nil {
			return nil, err
		}
		s.RoomID = stringPtr(roomID)
		s.URL = stringPtr(url)
		m.RoomCode = stringPtr(roomCode)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
