package chat

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

type ChatUsecase interface {
	AnswerLibrary(ctx context.Context, q *entity.LibraryQuestion) (entity.TokenStream, error)
	AnswerAuthor(ctx context.Context, conv *entity.AuthorConversation) (entity.TokenStream, error)
}
