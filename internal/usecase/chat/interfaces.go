package chat

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SegmentSearcher finds the user's library segments closest to a query vector.
type SegmentSearcher interface {
	SearchSegments(ctx context.Context, userID string, vector []float32, topK int, threshold float64) ([]entity.RetrievedSegment, error)
}

type SectionReader interface {
	Sections(ctx context.Context, contentID string) ([]entity.Section, error)
}

type Generator interface {
	Stream(ctx context.Context, req *entity.CompletionRequest) (entity.TokenStream, error)
}
