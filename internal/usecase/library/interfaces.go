package library

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type HighlightRepository interface {
	CountHighlights(ctx context.Context, userID, contentItemID string) (int, error)
	CreateHighlight(ctx context.Context, userID string, req *entity.CreateHighlightRequest) (*entity.Highlight, error)
	ListHighlights(ctx context.Context, userID string, contentItemID *string) ([]entity.Highlight, error)
	DeleteHighlight(ctx context.Context, userID, highlightID string) error
}

type BookmarkRepository interface {
	Bookmark(ctx context.Context, userID, contentItemID string) error
	Unbookmark(ctx context.Context, userID, contentItemID string) error
}

type Recommender interface {
	Recommend(ctx context.Context, completedIDs []string) ([]entity.Recommendation, error)
}
