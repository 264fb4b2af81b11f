package indexing

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Configured() bool
}

type SegmentSource interface {
	PendingSegments(ctx context.Context, limit int) ([]entity.PendingSegment, error)
}

// SegmentIndex is where segment vectors end up: pgvector or Qdrant.
type SegmentIndex interface {
	StoreSegmentEmbedding(ctx context.Context, segment entity.PendingSegment, vector []float32) error
}

type ContentStore interface {
	PendingContentItems(ctx context.Context, limit int) ([]entity.PendingContentItem, error)
	StoreContentEmbedding(ctx context.Context, contentID string, vector []float32) error
}
