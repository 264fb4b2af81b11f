package activity

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type ActivityRepository interface {
	// AddReading adds entry's seconds to the user's total for that day.
	AddReading(ctx context.Context, userID string, entry entity.ActivityEntry) error
	History(ctx context.Context, userID string, rng entity.ActivityRange) ([]entity.ActivityDay, error)
}
