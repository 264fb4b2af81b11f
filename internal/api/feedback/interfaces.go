package feedback

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type FeedbackUsecase interface {
	Status(ctx context.Context, userID, contentID string) (entity.FeedbackStatus, error)
	Submit(ctx context.Context, userID string, fb *entity.ContentFeedback) error
	Remove(ctx context.Context, userID, contentID string) error
}
