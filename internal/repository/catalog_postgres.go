package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contentItemColumns = `id::text, type, title, source_url, status, quick_mode_json, duration_seconds,
       author, cover_image_url, category, is_featured, created_at, updated_at`

const (
	randomVerifiedQuery = `
SELECT ` + contentItemColumns + `
FROM get_random_verified_content()`

	verifiedByIDsQuery = `
SELECT ` + contentItemColumns + `
FROM content_item
WHERE id = ANY($1::text[]::uuid[])
  AND status = 'verified'
  AND deleted_at IS NULL`
)

// CatalogPostgres reads published content items.
type CatalogPostgres struct {
	db *pgxpool.Pool
}

func NewCatalogPostgres(db *pgxpool.Pool) *CatalogPostgres {
	return &CatalogPostgres{db: db}
}

func (r *CatalogPostgres) RandomVerified(ctx context.Context) (*entity.ContentItem, error) {
	rows, err := r.db.Query(ctx, randomVerifiedQuery)
	if err != nil {
		return nil, fmt.Errorf("query random content: %w", err)
	}

	item, err := pgx.CollectOneRow(rows, scanContentItem)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: no content available", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan random content: %w", err)
	}
	return &item, nil
}

// VerifiedByIDs returns the published items among ids in no particular order.
func (r *CatalogPostgres) VerifiedByIDs(ctx context.Context, ids []string) ([]entity.ContentItem, error) {
	rows, err := r.db.Query(ctx, verifiedByIDsQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("query content batch: %w", err)
	}

	items, err := pgx.CollectRows(rows, scanContentItem)
	if err != nil {
		return nil, fmt.Errorf("scan content batch: %w", err)
	}
	return items, nil
}

func scanContentItem(row pgx.CollectableRow) (entity.ContentItem, error) {
	var (
		item      entity.ContentItem
		quickMode []byte
	)
	err := row.Scan(&item.ID, &item.Type, &item.Title, &item.SourceURL, &item.Status, &quickMode,
		&item.DurationSeconds, &item.Author, &item.CoverImageURL, &item.Category, &item.IsFeatured,
		&item.CreatedAt, &item.UpdatedAt)
	if len(quickMode) > 0 {
		item.QuickMode = quickMode
	}
	return item, err
}
