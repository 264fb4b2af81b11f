package activity

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type ActivityUsecase interface {
	Log(ctx context.Context, userID string, entry entity.ActivityEntry) error
	History(ctx context.Context, userID string, rng entity.ActivityRange) ([]entity.ActivityDay, error)
}
