package store

import (
	"context"

	"planner-api/internal/model"
)

// ListReminders returns the user's reminders. The service only ever reads
// them; creation lives with the notification pipeline.
func (s *Store) ListReminders(ctx context.Context, userID string) ([]model.Reminder, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, title, is_active FROM reminders WHERE user_id = $1`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reminder
	for rows.Next() {
		var r model.Reminder
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.IsActive); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
