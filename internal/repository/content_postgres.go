package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const (
	pendingContentItemsQuery = `
SELECT id::text, title, COALESCE(author, ''), type, COALESCE(category, ''), quick_mode_json
FROM content_item
WHERE status = 'verified'
  AND deleted_at IS NULL
  AND embedding IS NULL
ORDER BY created_at ASC
LIMIT $1`

	updateContentEmbeddingQuery = `
UPDATE content_item SET embedding = $2 WHERE id = $1::uuid`
)

// ContentPostgres handles content-item level embeddings.
type ContentPostgres struct {
	db *pgxpool.Pool
}

func NewContentPostgres(db *pgxpool.Pool) *ContentPostgres {
	return &ContentPostgres{db: db}
}

func (r *ContentPostgres) PendingContentItems(ctx context.Context, limit int) ([]entity.PendingContentItem, error) {
	rows, err := r.db.Query(ctx, pendingContentItemsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query content items missing embeddings: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.PendingContentItem, error) {
		var (
			item      entity.PendingContentItem
			quickMode []byte
		)
		if err := row.Scan(&item.ID, &item.Title, &item.Author, &item.Type, &item.Category, &quickMode); err != nil {
			return item, err
		}
		item.QuickMode = parseQuickMode(quickMode)
		return item, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan content items: %w", err)
	}

	return items, nil
}

func (r *ContentPostgres) StoreContentEmbedding(ctx context.Context, contentID string, vector []float32) error {
	tag, err := r.db.Exec(ctx, updateContentEmbeddingQuery, contentID, pgvector.NewVector(vector))
	if err != nil {
		return fmt.Errorf("update content embedding %s: %w", contentID, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrContentNotFound
	}
	return nil
}

// parseQuickMode tolerates missing or malformed quick mode documents.
func parseQuickMode(raw []byte) entity.QuickMode {
	var qm entity.QuickMode
	if len(raw) == 0 {
		return qm
	}
	_ = json.Unmarshal(raw, &qm)
	return qm
}
