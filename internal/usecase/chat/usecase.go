package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ChatUsecase runs the library and author chat pipelines. Each call builds its
// context from scratch and keeps nothing once the stream is handed back.
type ChatUsecase struct {
	embedder        Embedder
	searcher        SegmentSearcher
	sections        SectionReader
	libraryLLM      Generator
	authorLLM       Generator
	cfg             config.ChatConfig
	maxOutputTokens int
	logger          *zap.Logger
}

func NewUsecase(
	embedder Embedder,
	searcher SegmentSearcher,
	sections SectionReader,
	libraryLLM Generator,
	authorLLM Generator,
	cfg config.ChatConfig,
	maxOutputTokens int,
	logger *zap.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		embedder:        embedder,
		searcher:        searcher,
		sections:        sections,
		libraryLLM:      libraryLLM,
		authorLLM:       authorLLM,
		cfg:             cfg,
		maxOutputTokens: maxOutputTokens,
		logger:          logger,
	}
}

// AnswerLibrary embeds the question, retrieves matching segments from the
// user's library and starts a grounded completion. No search happens if the
// embedding fails, and no completion starts if the search fails.
func (uc *ChatUsecase) AnswerLibrary(ctx context.Context, q *entity.LibraryQuestion) (entity.TokenStream, error) {
	chatCtx := &entity.ChatContext{Query: q.Query}

	start := time.Now()
	vector, err := uc.embedder.Embed(ctx, q.Query)
	observeStage(flowLibrary, stageEmbed, start, err)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	chatCtx.Embedding = vector

	start = time.Now()
	segments, err := uc.searcher.SearchSegments(ctx, q.UserID, vector, uc.cfg.TopK, uc.cfg.MatchThreshold)
	observeStage(flowLibrary, stageSearch, start, err)
	if err != nil {
		return nil, fmt.Errorf("search library: %w", err)
	}
	chatCtx.Segments = segments
	chatCtx.Text, chatCtx.Truncated = buildLibraryContext(segments, uc.cfg.ContextBudget)
	if chatCtx.Truncated {
		contextTruncations.WithLabelValues(flowLibrary).Inc()
	}

	ctxzap.Info(ctx, "Library context assembled",
		zap.Int("segments", len(segments)),
		zap.Int("context_chars", len(chatCtx.Text)),
		zap.Bool("truncated", chatCtx.Truncated),
	)

	return uc.generate(ctx, flowLibrary, uc.libraryLLM, &entity.CompletionRequest{
		SystemPrompt: libraryPrompt(chatCtx.Text),
		Messages:     q.Messages,
	})
}

// AnswerAuthor answers in the voice of a content item's author, using the
// item's sections in reading order as context.
func (uc *ChatUsecase) AnswerAuthor(ctx context.Context, conv *entity.AuthorConversation) (entity.TokenStream, error) {
	start := time.Now()
	sections, err := uc.sections.Sections(ctx, conv.ContentID)
	observeStage(flowAuthor, stageSections, start, err)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	text, truncated := buildAuthorContext(sections, uc.cfg.ContextBudget)
	if truncated {
		contextTruncations.WithLabelValues(flowAuthor).Inc()
	}

	ctxzap.Info(ctx, "Author context assembled",
		zap.String("content_id", conv.ContentID),
		zap.Int("sections", len(sections)),
		zap.Bool("truncated", truncated),
	)

	return uc.generate(ctx, flowAuthor, uc.authorLLM, &entity.CompletionRequest{
		SystemPrompt:    authorPrompt(conv.AuthorName, conv.BookTitle, text),
		Messages:        conv.Messages,
		MaxOutputTokens: uc.maxOutputTokens,
	})
}

func (uc *ChatUsecase) generate(ctx context.Context, flow string, llm Generator, req *entity.CompletionRequest) (entity.TokenStream, error) {
	start := time.Now()
	stream, err := llm.Stream(ctx, req)
	observeStage(flow, stageGenerate, start, err)
	if err != nil {
		return nil, fmt.Errorf("start completion: %w", err)
	}
	return stream, nil
}
