package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Jseow008/ThePlayBook-sub001/internal/api/middleware"
	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/integration/llm"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contentID = "6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b"

type fakeUsecase struct {
	stream     entity.TokenStream
	err        error
	question   *entity.LibraryQuestion
	conv       *entity.AuthorConversation
	libraryHit int
	authorHit  int
}

func (f *fakeUsecase) AnswerLibrary(_ context.Context, q *entity.LibraryQuestion) (entity.TokenStream, error) {
	f.libraryHit++
	f.question = q
	return f.stream, f.err
}

func (f *fakeUsecase) AnswerAuthor(_ context.Context, conv *entity.AuthorConversation) (entity.TokenStream, error) {
	f.authorHit++
	f.conv = conv
	return f.stream, f.err
}

func newHandler(uc *fakeUsecase) *Handler {
	return NewHandler(uc, validator.NewValidator(config.Default().ChatCfg))
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), &entity.User{ID: "user-1"}))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) entity.ErrorCode {
	t.Helper()
	var body entity.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestChat(t *testing.T) {
	t.Run("streams chunks as plain text", func(t *testing.T) {
		uc := &fakeUsecase{stream: llm.NewSliceStream("Your notes ", "say ", "focus.")}
		rec := post(newHandler(uc).Chat, `{"messages":[{"role":"user","content":"  what did I learn?  "}]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.Equal(t, "Your notes say focus.", rec.Body.String())
		require.NotNil(t, uc.question)
		assert.Equal(t, "what did I learn?", uc.question.Query)
		assert.Equal(t, "user-1", uc.question.UserID)
		assert.True(t, rec.Flushed)
	})

	t.Run("invalid json", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := post(newHandler(uc).Chat, `{"messages":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.CodeInvalidJSON, errorCode(t, rec))
		assert.Zero(t, uc.libraryHit)
	})

	t.Run("mistyped field hides decoder details", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := post(newHandler(uc).Chat, `{"messages":[{"role":"user","content":42}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body entity.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, entity.CodeInvalidJSON, body.Error.Code)
		assert.Equal(t, response.InvalidJSONMessage, body.Error.Message)
		assert.Zero(t, uc.libraryHit)
	})

	t.Run("empty messages", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := post(newHandler(uc).Chat, `{"messages":[]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.CodeValidationError, errorCode(t, rec))
		assert.Zero(t, uc.libraryHit)
	})

	t.Run("last message not from user", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := post(newHandler(uc).Chat, `{"messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.CodeValidationError, errorCode(t, rec))
	})

	t.Run("missing provider key is a masked 500", func(t *testing.T) {
		uc := &fakeUsecase{err: fmt.Errorf("embed query: %w", entity.ErrProviderNotConfigured)}
		rec := post(newHandler(uc).Chat, `{"messages":[{"role":"user","content":"hi"}]}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body entity.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, entity.CodeInternalError, body.Error.Code)
		assert.Equal(t, libraryFailureMessage, body.Error.Message)
	})

	t.Run("stream failing before first chunk", func(t *testing.T) {
		uc := &fakeUsecase{stream: llm.NewSliceStream().WithError(errors.New("upstream 500"))}
		rec := post(newHandler(uc).Chat, `{"messages":[{"role":"user","content":"hi"}]}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, entity.CodeInternalError, errorCode(t, rec))
	})

	t.Run("stream failing mid answer keeps partial text", func(t *testing.T) {
		stream := llm.NewSliceStream("partial").WithError(errors.New("reset"))
		uc := &fakeUsecase{stream: stream}
		rec := post(newHandler(uc).Chat, `{"messages":[{"role":"user","content":"hi"}]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "partial", rec.Body.String())
		assert.True(t, stream.Closed())
	})

	t.Run("empty stream is an empty 200", func(t *testing.T) {
		uc := &fakeUsecase{stream: llm.NewSliceStream()}
		rec := post(newHandler(uc).Chat, `{"messages":[{"role":"user","content":"hi"}]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestAuthorChat(t *testing.T) {
	t.Run("accepts parts and legacy content", func(t *testing.T) {
		uc := &fakeUsecase{stream: llm.NewSliceStream("As I wrote...")}
		body := fmt.Sprintf(`{"contentId":%q,"authorName":"Cal Newport","bookTitle":"Deep Work","messages":[
			{"role":"user","parts":[{"type":"text","text":"Why "},{"type":"text","text":"focus?"}]},
			{"role":"assistant","content":"Because."},
			{"role":"user","content":"More please"}]}`, contentID)
		rec := post(newHandler(uc).AuthorChat, body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "As I wrote...", rec.Body.String())
		require.NotNil(t, uc.conv)
		assert.Equal(t, contentID, uc.conv.ContentID)
		require.Len(t, uc.conv.Messages, 3)
		assert.Equal(t, "Why focus?", uc.conv.Messages[0].Content)
	})

	t.Run("bad content id", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := post(newHandler(uc).AuthorChat, `{"contentId":"nope","authorName":"A","bookTitle":"B","messages":[{"role":"user","content":"hi"}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.CodeValidationError, errorCode(t, rec))
		assert.Zero(t, uc.authorHit)
	})

	t.Run("section load failure", func(t *testing.T) {
		uc := &fakeUsecase{err: fmt.Errorf("load sections: %w", entity.ErrSectionsUnavailable)}
		body := fmt.Sprintf(`{"contentId":%q,"authorName":"A","bookTitle":"B","messages":[{"role":"user","content":"hi"}]}`, contentID)
		rec := post(newHandler(uc).AuthorChat, body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, entity.CodeInternalError, errorCode(t, rec))
	})
}
