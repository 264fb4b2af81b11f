package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEmbedder struct {
	calls  int
	texts  []string
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	f.texts = append(f.texts, text)
	return f.vector, f.err
}

type fakeSearcher struct {
	calls     int
	userID    string
	topK      int
	threshold float64
	segments  []entity.RetrievedSegment
	err       error
}

func (f *fakeSearcher) SearchSegments(_ context.Context, userID string, _ []float32, topK int, threshold float64) ([]entity.RetrievedSegment, error) {
	f.calls++
	f.userID, f.topK, f.threshold = userID, topK, threshold
	return f.segments, f.err
}

type fakeSections struct {
	contentID string
	sections  []entity.Section
	err       error
}

func (f *fakeSections) Sections(_ context.Context, contentID string) ([]entity.Section, error) {
	f.contentID = contentID
	return f.sections, f.err
}

type fakeGenerator struct {
	calls int
	req   *entity.CompletionRequest
	err   error
}

func (f *fakeGenerator) Stream(_ context.Context, req *entity.CompletionRequest) (entity.TokenStream, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return llm.NewSliceStream("ok"), nil
}

type harness struct {
	embedder *fakeEmbedder
	searcher *fakeSearcher
	sections *fakeSections
	library  *fakeGenerator
	author   *fakeGenerator
	uc       *ChatUsecase
}

func newHarness() *harness {
	h := &harness{
		embedder: &fakeEmbedder{vector: []float32{0.1, 0.2}},
		searcher: &fakeSearcher{},
		sections: &fakeSections{},
		library:  &fakeGenerator{},
		author:   &fakeGenerator{},
	}
	h.uc = NewUsecase(h.embedder, h.searcher, h.sections, h.library, h.author, config.Default().ChatCfg, 600, zap.NewNop())
	return h
}

var question = &entity.LibraryQuestion{
	UserID:   "user-1",
	Query:    "how do habits form?",
	Messages: []entity.ChatMessage{{Role: entity.RoleUser, Content: "how do habits form?"}},
}

func TestAnswerLibrary(t *testing.T) {
	t.Run("one embed and one search per request", func(t *testing.T) {
		h := newHarness()
		h.searcher.segments = []entity.RetrievedSegment{
			{Title: "Deep Work", Body: "focus", Similarity: 0.71},
			{Title: "Atomic Habits", Body: "cue, craving, response, reward", Similarity: 0.9},
		}

		stream, err := h.uc.AnswerLibrary(context.Background(), question)
		require.NoError(t, err)
		require.NotNil(t, stream)

		assert.Equal(t, 1, h.embedder.calls)
		assert.Equal(t, []string{"how do habits form?"}, h.embedder.texts)
		assert.Equal(t, 1, h.searcher.calls)
		assert.Equal(t, "user-1", h.searcher.userID)
		assert.Equal(t, 5, h.searcher.topK)
		assert.Equal(t, 0.7, h.searcher.threshold)

		prompt := h.library.req.SystemPrompt
		first := strings.Index(prompt, `[Source 1: "Atomic Habits"]`)
		second := strings.Index(prompt, `[Source 2: "Deep Work"]`)
		assert.True(t, first >= 0 && second > first, "sources ordered by similarity")
		assert.Equal(t, question.Messages, h.library.req.Messages)
		assert.Zero(t, h.author.calls)
	})

	t.Run("no matches degrades to no relevant information", func(t *testing.T) {
		h := newHarness()

		_, err := h.uc.AnswerLibrary(context.Background(), question)
		require.NoError(t, err)
		assert.Contains(t, h.library.req.SystemPrompt, noLibraryContext)
	})

	t.Run("missing embedding key stops before search", func(t *testing.T) {
		h := newHarness()
		h.embedder.err = entity.ErrProviderNotConfigured

		_, err := h.uc.AnswerLibrary(context.Background(), question)
		assert.ErrorIs(t, err, entity.ErrProviderNotConfigured)
		assert.Equal(t, entity.CodeInternalError, entity.CodeFor(err))
		assert.Zero(t, h.searcher.calls)
		assert.Zero(t, h.library.calls)
	})

	t.Run("embedding failure", func(t *testing.T) {
		h := newHarness()
		h.embedder.err = entity.ErrEmbeddingFailed

		_, err := h.uc.AnswerLibrary(context.Background(), question)
		assert.ErrorIs(t, err, entity.ErrEmbeddingFailed)
		assert.Zero(t, h.searcher.calls)
	})

	t.Run("search failure stops before generation", func(t *testing.T) {
		h := newHarness()
		h.searcher.err = entity.ErrSearchFailed

		_, err := h.uc.AnswerLibrary(context.Background(), question)
		assert.ErrorIs(t, err, entity.ErrSearchFailed)
		assert.Zero(t, h.library.calls)
	})

	t.Run("generation failure", func(t *testing.T) {
		h := newHarness()
		h.library.err = entity.ErrProviderNotConfigured

		_, err := h.uc.AnswerLibrary(context.Background(), question)
		assert.ErrorIs(t, err, entity.ErrProviderNotConfigured)
	})
}

func TestAnswerAuthor(t *testing.T) {
	conv := &entity.AuthorConversation{
		UserID:     "user-1",
		ContentID:  "content-1",
		AuthorName: "James Clear",
		BookTitle:  "Atomic Habits",
		Messages:   []entity.ChatMessage{{Role: entity.RoleUser, Content: "Why identity?"}},
	}

	t.Run("sections become the persona context", func(t *testing.T) {
		h := newHarness()
		h.sections.sections = []entity.Section{
			{Title: "Introduction", Body: "intro body"},
			{Body: "untitled body"},
		}

		_, err := h.uc.AnswerAuthor(context.Background(), conv)
		require.NoError(t, err)

		assert.Equal(t, "content-1", h.sections.contentID)
		assert.Zero(t, h.embedder.calls)
		assert.Zero(t, h.searcher.calls)

		req := h.author.req
		assert.Equal(t, 600, req.MaxOutputTokens)
		assert.True(t, strings.HasPrefix(req.SystemPrompt, `You are James Clear, the author of "Atomic Habits".`))
		assert.Contains(t, req.SystemPrompt, "## Introduction\nintro body\n\n---\n\n## Section 2\nuntitled body")
	})

	t.Run("section load failure", func(t *testing.T) {
		h := newHarness()
		h.sections.err = fmt.Errorf("%w: timeout", entity.ErrSectionsUnavailable)

		_, err := h.uc.AnswerAuthor(context.Background(), conv)
		assert.ErrorIs(t, err, entity.ErrSectionsUnavailable)
		assert.Equal(t, entity.CodeInternalError, entity.CodeFor(err))
		assert.Zero(t, h.author.calls)
	})
}

func TestTruncate(t *testing.T) {
	text, cut := truncate("short", 10)
	assert.Equal(t, "short", text)
	assert.False(t, cut)

	text, cut = truncate("exactly10!", 10)
	assert.Equal(t, "exactly10!", text)
	assert.False(t, cut)

	text, cut = truncate(strings.Repeat("é", 15), 10)
	assert.True(t, cut)
	assert.Equal(t, strings.Repeat("é", 10)+truncatedMarker, text)
}

func TestBuildLibraryContext(t *testing.T) {
	text, cut := buildLibraryContext(nil, 100)
	assert.Empty(t, text)
	assert.False(t, cut)

	text, _ = buildLibraryContext([]entity.RetrievedSegment{{Body: "b", Similarity: 0.8}}, 100)
	assert.Equal(t, "[Source 1: \"Unknown Source\"]\nb", text)

	long := []entity.RetrievedSegment{{Title: "T", Body: strings.Repeat("x", 200), Similarity: 0.8}}
	text, cut = buildLibraryContext(long, 50)
	assert.True(t, cut)
	assert.True(t, strings.HasSuffix(text, "[Content truncated for length]"))
	assert.Equal(t, 50+len(truncatedMarker), len([]rune(text)))
}

func TestLibraryPrompt(t *testing.T) {
	assert.Contains(t, libraryPrompt("ctx"), "===\nctx\n===")
	assert.NotContains(t, libraryPrompt("ctx"), noLibraryContext)
}
