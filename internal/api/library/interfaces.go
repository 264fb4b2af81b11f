package library

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type LibraryUsecase interface {
	CreateHighlight(ctx context.Context, userID string, req *entity.CreateHighlightRequest) (*entity.Highlight, error)
	ListHighlights(ctx context.Context, userID string, contentItemID *string) ([]entity.Highlight, error)
	DeleteHighlight(ctx context.Context, userID, highlightID string) error
	AddBookmark(ctx context.Context, userID, contentItemID string) error
	RemoveBookmark(ctx context.Context, userID, contentItemID string) error
	Recommend(ctx context.Context, completedIDs []string) ([]entity.Recommendation, error)
}
