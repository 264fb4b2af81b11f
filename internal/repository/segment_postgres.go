package repository

import (
	"context"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const (
	searchSegmentsQuery = `
SELECT m.segment_id::text, m.content_item_id::text, COALESCE(ci.title, ''), s.markdown_body, m.similarity
FROM match_library_segments($1, $2, $3, $4::uuid) AS m
JOIN segment s ON s.id = m.segment_id
JOIN content_item ci ON ci.id = m.content_item_id
ORDER BY m.similarity DESC`

	sectionsQuery = `
SELECT COALESCE(title, ''), markdown_body, order_index
FROM segment
WHERE item_id = $1::uuid
ORDER BY order_index ASC`

	pendingSegmentsQuery = `
SELECT id::text, content_item_id::text, title, markdown_body
FROM get_segments_missing_embeddings($1)`

	insertSegmentEmbeddingQuery = `
INSERT INTO segment_embedding (segment_id, content_item_id, embedding)
VALUES ($1::uuid, $2::uuid, $3)
ON CONFLICT (segment_id) DO UPDATE SET embedding = EXCLUDED.embedding`

	libraryContentIDsQuery = `
SELECT content_id::text
FROM user_library
WHERE user_id = $1::uuid`
)

// SegmentPostgres reads content segments and stores their embeddings in pgvector.
type SegmentPostgres struct {
	db *pgxpool.Pool
}

func NewSegmentPostgres(db *pgxpool.Pool) *SegmentPostgres {
	return &SegmentPostgres{db: db}
}

// SearchSegments runs the library-scoped similarity search. Rows come back in
// descending similarity, already filtered by the threshold.
func (r *SegmentPostgres) SearchSegments(ctx context.Context, userID string, vector []float32, topK int, threshold float64) ([]entity.RetrievedSegment, error) {
	rows, err := r.db.Query(ctx, searchSegmentsQuery, pgvector.NewVector(vector), threshold, topK, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrSearchFailed, err)
	}

	segments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.RetrievedSegment, error) {
		var s entity.RetrievedSegment
		err := row.Scan(&s.SegmentID, &s.ContentItemID, &s.Title, &s.Body, &s.Similarity)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan segments: %w", entity.ErrSearchFailed, err)
	}

	return segments, nil
}

// Sections returns a content item's segments in reading order.
func (r *SegmentPostgres) Sections(ctx context.Context, contentID string) ([]entity.Section, error) {
	rows, err := r.db.Query(ctx, sectionsQuery, contentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrSectionsUnavailable, err)
	}

	sections, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Section, error) {
		var s entity.Section
		err := row.Scan(&s.Title, &s.Body, &s.OrderIndex)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan sections: %w", entity.ErrSectionsUnavailable, err)
	}

	return sections, nil
}

func (r *SegmentPostgres) PendingSegments(ctx context.Context, limit int) ([]entity.PendingSegment, error) {
	rows, err := r.db.Query(ctx, pendingSegmentsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query segments missing embeddings: %w", err)
	}

	segments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.PendingSegment, error) {
		var s entity.PendingSegment
		err := row.Scan(&s.ID, &s.ContentItemID, &s.Title, &s.Body)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan segments missing embeddings: %w", err)
	}

	return segments, nil
}

func (r *SegmentPostgres) StoreSegmentEmbedding(ctx context.Context, segment entity.PendingSegment, vector []float32) error {
	_, err := r.db.Exec(ctx, insertSegmentEmbeddingQuery, segment.ID, segment.ContentItemID, pgvector.NewVector(vector))
	if err != nil {
		return fmt.Errorf("insert segment embedding %s: %w", segment.ID, err)
	}
	return nil
}

// LibraryContentIDs lists the content items saved by the user.
func (r *SegmentPostgres) LibraryContentIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, libraryContentIDsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query user library: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan user library: %w", err)
	}

	return ids, nil
}
