package feedback

import (
	"context"
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// FeedbackUsecase records thumbs up and down votes on content items.
type FeedbackUsecase struct {
	votes  FeedbackRepository
	logger *zap.Logger
}

func NewUsecase(votes FeedbackRepository, logger *zap.Logger) *FeedbackUsecase {
	return &FeedbackUsecase{votes: votes, logger: logger}
}

// Status reports the user's current vote. Anonymous callers have none.
func (uc *FeedbackUsecase) Status(ctx context.Context, userID, contentID string) (entity.FeedbackStatus, error) {
	if userID == "" {
		return entity.FeedbackNone, nil
	}

	vote, err := uc.votes.GetVote(ctx, userID, contentID)
	if err != nil {
		return entity.FeedbackNone, fmt.Errorf("get feedback: %w", err)
	}
	switch {
	case vote == nil:
		return entity.FeedbackNone, nil
	case *vote:
		return entity.FeedbackUp, nil
	default:
		return entity.FeedbackDown, nil
	}
}

// Submit stores the vote, replacing any earlier vote on the same item.
func (uc *FeedbackUsecase) Submit(ctx context.Context, userID string, fb *entity.ContentFeedback) error {
	if err := uc.votes.UpsertVote(ctx, userID, fb); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	ctxzap.Info(ctx, "feedback saved",
		zap.String("content_id", fb.ContentID),
		zap.Bool("is_positive", fb.IsPositive),
	)
	return nil
}

// Remove clears the vote. Removing a vote that does not exist succeeds.
func (uc *FeedbackUsecase) Remove(ctx context.Context, userID, contentID string) error {
	if err := uc.votes.DeleteVote(ctx, userID, contentID); err != nil {
		return fmt.Errorf("remove feedback: %w", err)
	}
	ctxzap.Info(ctx, "feedback removed", zap.String("content_id", contentID))
	return nil
}
