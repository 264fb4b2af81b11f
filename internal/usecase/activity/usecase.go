package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ActivityUsecase keeps the per-day reading totals behind the streak view.
type ActivityUsecase struct {
	days   ActivityRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewUsecase(days ActivityRepository, logger *zap.Logger) *ActivityUsecase {
	return &ActivityUsecase{days: days, now: time.Now, logger: logger}
}

// Log adds reading time to a day, today in UTC when entry has no date.
func (uc *ActivityUsecase) Log(ctx context.Context, userID string, entry entity.ActivityEntry) error {
	if entry.Date == "" {
		entry.Date = uc.now().UTC().Format(entity.DateLayout)
	}
	if err := uc.days.AddReading(ctx, userID, entry); err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	ctxzap.Debug(ctx, "reading logged",
		zap.String("activity_date", entry.Date),
		zap.Int("duration_seconds", entry.DurationSeconds),
	)
	return nil
}

func (uc *ActivityUsecase) History(ctx context.Context, userID string, rng entity.ActivityRange) ([]entity.ActivityDay, error) {
	days, err := uc.days.History(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("activity history: %w", err)
	}
	if days == nil {
		days = []entity.ActivityDay{}
	}
	return days, nil
}
