package library

import (
	"context"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MaxHighlightsPerItem caps how many highlights a user keeps on one content item.
const MaxHighlightsPerItem = 50

// LibraryUsecase implements highlights, bookmarks and recommendations.
type LibraryUsecase struct {
	highlights  HighlightRepository
	bookmarks   BookmarkRepository
	recommender Recommender
	logger      *zap.Logger
}

func NewUsecase(
	highlights HighlightRepository,
	bookmarks BookmarkRepository,
	recommender Recommender,
	logger *zap.Logger,
) *LibraryUsecase {
	return &LibraryUsecase{
		highlights:  highlights,
		bookmarks:   bookmarks,
		recommender: recommender,
		logger:      logger,
	}
}

// CreateHighlight stores a highlight unless the user already has the maximum
// number on that content item.
func (uc *LibraryUsecase) CreateHighlight(ctx context.Context, userID string, req *entity.CreateHighlightRequest) (*entity.Highlight, error) {
	count, err := uc.highlights.CountHighlights(ctx, userID, req.ContentItemID)
	if err != nil {
		return nil, fmt.Errorf("count highlights: %w", err)
	}
	if count >= MaxHighlightsPerItem {
		ctxzap.Info(ctx, "highlight limit reached",
			zap.String("content_item_id", req.ContentItemID),
			zap.Int("count", count),
		)
		return nil, fmt.Errorf("%w: at most %d highlights per item", entity.ErrHighlightLimit, MaxHighlightsPerItem)
	}

	highlight, err := uc.highlights.CreateHighlight(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("create highlight: %w", err)
	}

	ctxzap.Info(ctx, "highlight created", zap.String("highlight_id", highlight.ID))
	return highlight, nil
}

func (uc *LibraryUsecase) ListHighlights(ctx context.Context, userID string, contentItemID *string) ([]entity.Highlight, error) {
	highlights, err := uc.highlights.ListHighlights(ctx, userID, contentItemID)
	if err != nil {
		return nil, fmt.Errorf("list highlights: %w", err)
	}
	if highlights == nil {
		highlights = []entity.Highlight{}
	}
	return highlights, nil
}

func (uc *LibraryUsecase) DeleteHighlight(ctx context.Context, userID, highlightID string) error {
	if err := uc.highlights.DeleteHighlight(ctx, userID, highlightID); err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	ctxzap.Info(ctx, "highlight deleted", zap.String("highlight_id", highlightID))
	return nil
}

func (uc *LibraryUsecase) AddBookmark(ctx context.Context, userID, contentItemID string) error {
	if err := uc.bookmarks.Bookmark(ctx, userID, contentItemID); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

func (uc *LibraryUsecase) RemoveBookmark(ctx context.Context, userID, contentItemID string) error {
	if err := uc.bookmarks.Unbookmark(ctx, userID, contentItemID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// Recommend returns items similar to what the reader has finished. An empty
// history yields an empty list without a lookup.
func (uc *LibraryUsecase) Recommend(ctx context.Context, completedIDs []string) ([]entity.Recommendation, error) {
	if len(completedIDs) == 0 {
		return []entity.Recommendation{}, nil
	}

	recs, err := uc.recommender.Recommend(ctx, completedIDs)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	if recs == nil {
		recs = []entity.Recommendation{}
	}
	return recs, nil
}
