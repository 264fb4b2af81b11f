package catalog

import (
	"context"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CatalogUsecase serves published content to readers.
type CatalogUsecase struct {
	items  CatalogRepository
	logger *zap.Logger
}

func NewUsecase(items CatalogRepository, logger *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{items: items, logger: logger}
}

func (uc *CatalogUsecase) Random(ctx context.Context) (*entity.ContentItem, error) {
	item, err := uc.items.RandomVerified(ctx)
	if err != nil {
		return nil, fmt.Errorf("random content: %w", err)
	}
	return item, nil
}

// Batch returns the verified, non-deleted items among ids. Unknown and
// unpublished ids are dropped silently.
func (uc *CatalogUsecase) Batch(ctx context.Context, ids []string) ([]entity.ContentItem, error) {
	items, err := uc.items.VerifiedByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("content batch: %w", err)
	}
	if items == nil {
		items = []entity.ContentItem{}
	}
	if len(items) < len(ids) {
		ctxzap.Debug(ctx, "batch dropped ids",
			zap.Int("requested", len(ids)),
			zap.Int("returned", len(items)),
		)
	}
	return items, nil
}
