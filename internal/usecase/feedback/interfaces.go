package feedback

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type FeedbackRepository interface {
	// GetVote returns nil when the user has not voted on the item.
	GetVote(ctx context.Context, userID, contentID string) (*bool, error)
	UpsertVote(ctx context.Context, userID string, fb *entity.ContentFeedback) error
	DeleteVote(ctx context.Context, userID, contentID string) error
}
