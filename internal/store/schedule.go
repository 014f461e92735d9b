package store

import (
	"context"
	"errors"

	"planner-api/internal/model"
)

var ErrNotFound = errors.New("not found")

const scheduleColumns = `id, user_id, title, to_char(date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	location, priority, status, created_at, updated_at`

func (s *Store) CreateSchedule(ctx context.Context, sc *model.Schedule) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO schedules (id, user_id, title, date, start_time, end_time, location, priority, status)
		 VALUES ($1,$2,$3,$4::date,$5::time,$6::time,$7,$8,$9)`,
		sc.ID, sc.UserID, sc.Title, sc.Date, sc.StartTime, sc.EndTime, sc.Location, sc.Priority, sc.Status,
	)
	return err
}

// ListSchedules returns every schedule owned by userID, newest date first.
func (s *Store) ListSchedules(ctx context.Context, userID string) ([]model.Schedule, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+scheduleColumns+`
		 FROM schedules WHERE user_id = $1
		 ORDER BY date DESC, start_time`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Schedule
	for rows.Next() {
		var sc model.Schedule
		if err := rows.Scan(
			&sc.ID, &sc.UserID, &sc.Title, &sc.Date, &sc.StartTime, &sc.EndTime,
			&sc.Location, &sc.Priority, &sc.Status, &sc.CreatedAt, &sc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *Store) GetSchedule(ctx context.Context, id, userID string) (*model.Schedule, error) {
	sc := &model.Schedule{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+scheduleColumns+`
		 FROM schedules WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&sc.ID, &sc.UserID, &sc.Title, &sc.Date, &sc.StartTime, &sc.EndTime,
		&sc.Location, &sc.Priority, &sc.Status, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Store) UpdateSchedule(ctx context.Context, sc *model.Schedule) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE schedules
		 SET title=$1, date=$2::date, start_time=$3::time, end_time=$4::time,
		     location=$5, priority=$6, status=$7, updated_at=NOW()
		 WHERE id=$8 AND user_id=$9`,
		sc.Title, sc.Date, sc.StartTime, sc.EndTime, sc.Location, sc.Priority, sc.Status, sc.ID, sc.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateScheduleStatus(ctx context.Context, id, userID string, status model.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE schedules SET status=$1, updated_at=NOW() WHERE id=$2 AND user_id=$3`,
		status, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSchedule(ctx context.Context, id, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM schedules WHERE id=$1 AND user_id=$2`, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
