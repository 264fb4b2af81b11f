package catalog

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type CatalogRepository interface {
	// RandomVerified returns entity.ErrNotFound when nothing is published.
	RandomVerified(ctx context.Context) (*entity.ContentItem, error)
	VerifiedByIDs(ctx context.Context, ids []string) ([]entity.ContentItem, error)
}
