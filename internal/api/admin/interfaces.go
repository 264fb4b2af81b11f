package admin

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type IndexingUsecase interface {
	SyncSegments(ctx context.Context) (*entity.SyncResult, error)
	SyncContentItems(ctx context.Context) (*entity.SyncResult, error)
}
