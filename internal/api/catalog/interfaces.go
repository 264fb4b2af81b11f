package catalog

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type CatalogUsecase interface {
	Random(ctx context.Context) (*entity.ContentItem, error)
	Batch(ctx context.Context, ids []string) ([]entity.ContentItem, error)
}
