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
	countHighlightsQuery = `
SELECT COUNT(*) FROM user_highlights WHERE user_id = $1::uuid AND content_item_id = $2::uuid`

	insertHighlightQuery = `
INSERT INTO user_highlights (user_id, content_item_id, segment_id, highlighted_text, note_body, color)
VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6)
RETURNING id::text, user_id::text, content_item_id::text, segment_id::text, highlighted_text, note_body, color, created_at`

	listHighlightsQuery = `
SELECT h.id::text, h.user_id::text, h.content_item_id::text, h.segment_id::text,
       h.highlighted_text, h.note_body, h.color, h.created_at,
       ci.id::text, ci.title, ci.author, ci.cover_image_url
FROM user_highlights h
JOIN content_item ci ON ci.id = h.content_item_id
WHERE h.user_id = $1::uuid
  AND ($2::uuid IS NULL OR h.content_item_id = $2::uuid)
ORDER BY h.created_at DESC
LIMIT $3`

	deleteHighlightQuery = `
DELETE FROM user_highlights WHERE id = $1::uuid AND user_id = $2::uuid`

	upsertBookmarkQuery = `
INSERT INTO user_library (user_id, content_id, is_bookmarked, last_interacted_at)
VALUES ($1::uuid, $2::uuid, TRUE, NOW())
ON CONFLICT (user_id, content_id)
DO UPDATE SET is_bookmarked = TRUE, last_interacted_at = NOW()`

	bookmarkProgressQuery = `
SELECT progress IS NOT NULL FROM user_library
WHERE user_id = $1::uuid AND content_id = $2::uuid
FOR UPDATE`

	deleteLibraryRowQuery = `
DELETE FROM user_library WHERE user_id = $1::uuid AND content_id = $2::uuid`

	unsetBookmarkQuery = `
UPDATE user_library SET is_bookmarked = FALSE, last_interacted_at = NOW()
WHERE user_id = $1::uuid AND content_id = $2::uuid`
)

// listCap bounds unfiltered highlight listings.
const listCap = 100

// LibraryPostgres stores highlights and bookmarks.
type LibraryPostgres struct {
	db *pgxpool.Pool
}

func NewLibraryPostgres(db *pgxpool.Pool) *LibraryPostgres {
	return &LibraryPostgres{db: db}
}

func (r *LibraryPostgres) CountHighlights(ctx context.Context, userID, contentItemID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, countHighlightsQuery, userID, contentItemID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count highlights: %w", err)
	}
	return count, nil
}

func (r *LibraryPostgres) CreateHighlight(ctx context.Context, userID string, req *entity.CreateHighlightRequest) (*entity.Highlight, error) {
	var h entity.Highlight
	err := r.db.QueryRow(ctx, insertHighlightQuery,
		userID, req.ContentItemID, req.SegmentID, req.HighlightedText, req.NoteBody, req.Color,
	).Scan(&h.ID, &h.UserID, &h.ContentItemID, &h.SegmentID, &h.HighlightedText, &h.NoteBody, &h.Color, &h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert highlight: %w", err)
	}
	return &h, nil
}

// ListHighlights returns the user's highlights newest first. Without a content
// filter the result is capped.
func (r *LibraryPostgres) ListHighlights(ctx context.Context, userID string, contentItemID *string) ([]entity.Highlight, error) {
	// A filtered list is already bounded by the per-item highlight limit.
	limit := listCap
	if contentItemID != nil {
		limit = listCap * 10
	}

	rows, err := r.db.Query(ctx, listHighlightsQuery, userID, contentItemID, limit)
	if err != nil {
		return nil, fmt.Errorf("query highlights: %w", err)
	}

	highlights, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Highlight, error) {
		var (
			h     entity.Highlight
			brief entity.ContentBrief
		)
		err := row.Scan(&h.ID, &h.UserID, &h.ContentItemID, &h.SegmentID,
			&h.HighlightedText, &h.NoteBody, &h.Color, &h.CreatedAt,
			&brief.ID, &brief.Title, &brief.Author, &brief.CoverImageURL)
		h.ContentItem = &brief
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan highlights: %w", err)
	}

	return highlights, nil
}

// DeleteHighlight removes a highlight only when it belongs to the user.
func (r *LibraryPostgres) DeleteHighlight(ctx context.Context, userID, highlightID string) error {
	if _, err := r.db.Exec(ctx, deleteHighlightQuery, highlightID, userID); err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	return nil
}

func (r *LibraryPostgres) Bookmark(ctx context.Context, userID, contentItemID string) error {
	if _, err := r.db.Exec(ctx, upsertBookmarkQuery, userID, contentItemID); err != nil {
		return fmt.Errorf("upsert bookmark: %w", err)
	}
	return nil
}

// Unbookmark clears the bookmark. A row without reading progress carries no
// other state and is deleted; otherwise only the flag is cleared.
func (r *LibraryPostgres) Unbookmark(ctx context.Context, userID, contentItemID string) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var hasProgress bool
		err := tx.QueryRow(ctx, bookmarkProgressQuery, userID, contentItemID).Scan(&hasProgress)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read library row: %w", err)
		}

		query := deleteLibraryRowQuery
		if hasProgress {
			query = unsetBookmarkQuery
		}
		_, err = tx.Exec(ctx, query, userID, contentItemID)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func (r *LibraryPostgres) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
