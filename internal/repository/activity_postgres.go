package repository

import (
	"context"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	addReadingQuery = `
INSERT INTO reading_activity (user_id, activity_date, duration_seconds)
VALUES ($1::uuid, $2::date, $3)
ON CONFLICT (user_id, activity_date)
DO UPDATE SET duration_seconds = reading_activity.duration_seconds + EXCLUDED.duration_seconds,
              updated_at = NOW()`

	activityHistoryQuery = `
SELECT activity_date::text, duration_seconds, pages_read
FROM reading_activity
WHERE user_id = $1::uuid
  AND ($2::date IS NULL OR activity_date >= $2::date)
  AND ($3::date IS NULL OR activity_date <= $3::date)
ORDER BY activity_date ASC`
)

// ActivityPostgres keeps one reading_activity row per user and day.
type ActivityPostgres struct {
	db *pgxpool.Pool
}

func NewActivityPostgres(db *pgxpool.Pool) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

func (r *ActivityPostgres) AddReading(ctx context.Context, userID string, entry entity.ActivityEntry) error {
	if _, err := r.db.Exec(ctx, addReadingQuery, userID, entry.Date, entry.DurationSeconds); err != nil {
		return fmt.Errorf("upsert reading activity: %w", err)
	}
	return nil
}

func (r *ActivityPostgres) History(ctx context.Context, userID string, rng entity.ActivityRange) ([]entity.ActivityDay, error) {
	rows, err := r.db.Query(ctx, activityHistoryQuery, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("query reading activity: %w", err)
	}

	days, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ActivityDay, error) {
		var day entity.ActivityDay
		err := row.Scan(&day.ActivityDate, &day.DurationSeconds, &day.PagesRead)
		return day, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan reading activity: %w", err)
	}
	return days, nil
}
