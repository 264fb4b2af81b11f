package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	getFeedbackQuery = `
SELECT is_positive FROM content_feedback WHERE user_id = $1::uuid AND content_id = $2::uuid`

	upsertFeedbackQuery = `
INSERT INTO content_feedback (user_id, content_id, is_positive, reason, details)
VALUES ($1::uuid, $2::uuid, $3, $4, $5)
ON CONFLICT (user_id, content_id)
DO UPDATE SET is_positive = EXCLUDED.is_positive,
              reason = EXCLUDED.reason,
              details = EXCLUDED.details,
              updated_at = NOW()`

	deleteFeedbackQuery = `
DELETE FROM content_feedback WHERE user_id = $1::uuid AND content_id = $2::uuid`
)

// FeedbackPostgres stores one vote per user and content item.
type FeedbackPostgres struct {
	db *pgxpool.Pool
}

func NewFeedbackPostgres(db *pgxpool.Pool) *FeedbackPostgres {
	return &FeedbackPostgres{db: db}
}

func (r *FeedbackPostgres) GetVote(ctx context.Context, userID, contentID string) (*bool, error) {
	var positive bool
	err := r.db.QueryRow(ctx, getFeedbackQuery, userID, contentID).Scan(&positive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return &positive, nil
}

func (r *FeedbackPostgres) UpsertVote(ctx context.Context, userID string, fb *entity.ContentFeedback) error {
	_, err := r.db.Exec(ctx, upsertFeedbackQuery, userID, fb.ContentID, fb.IsPositive, fb.Reason, fb.Details)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", entity.ErrContentNotFound, fb.ContentID)
		}
		return fmt.Errorf("upsert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackPostgres) DeleteVote(ctx context.Context, userID, contentID string) error {
	if _, err := r.db.Exec(ctx, deleteFeedbackQuery, userID, contentID); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
