package chat

import (
	"context"
	"io"
	"net/http"

	"github.com/Jseow008/ThePlayBook-sub001/internal/api/middleware"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/logger"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/request"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	libraryFailureMessage = "Failed to process your question. Please try again."
	authorFailureMessage  = "Failed to reach the author. Please try again."
)

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Chat handles POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")
	user, _ := middleware.UserFrom(ctx)

	var req entity.ChatRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.handleUsecaseError(ctx, w, r, err, libraryFailureMessage)
		return
	}

	question, err := h.validator.ValidateChat(&req, user.ID)
	if err != nil {
		h.handleUsecaseError(ctx, w, r, err, libraryFailureMessage)
		return
	}

	ctxzap.Info(ctx, "answering library question",
		zap.Int("messages", len(question.Messages)),
		zap.Int("query_chars", len(question.Query)),
	)

	stream, err := h.usecase.AnswerLibrary(ctx, question)
	if err != nil {
		h.handleUsecaseError(ctx, w, r, err, libraryFailureMessage)
		return
	}

	h.streamText(ctx, w, r, stream, libraryFailureMessage)
}

// AuthorChat handles POST /api/chat/author
func (h *Handler) AuthorChat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AuthorChat")
	user, _ := middleware.UserFrom(ctx)

	var req entity.AuthorChatRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.handleUsecaseError(ctx, w, r, err, authorFailureMessage)
		return
	}

	conv, err := h.validator.ValidateAuthorChat(&req, user.ID)
	if err != nil {
		h.handleUsecaseError(ctx, w, r, err, authorFailureMessage)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("content_id", conv.ContentID))
	ctxzap.Info(ctx, "answering as author", zap.Int("messages", len(conv.Messages)))

	stream, err := h.usecase.AnswerAuthor(ctx, conv)
	if err != nil {
		h.handleUsecaseError(ctx, w, r, err, authorFailureMessage)
		return
	}

	h.streamText(ctx, w, r, stream, authorFailureMessage)
}

// streamText waits for the first chunk before committing to 200, so a
// provider that fails up front still gets a JSON error envelope.
func (h *Handler) streamText(ctx context.Context, w http.ResponseWriter, r *http.Request, stream entity.TokenStream, failureMessage string) {
	defer stream.Close()

	hasFirst := stream.Next()
	if !hasFirst {
		if err := stream.Err(); err != nil {
			h.handleUsecaseError(ctx, w, r, err, failureMessage)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	chunks, written := 0, 0
	for more := hasFirst; more; more = stream.Next() {
		chunk := stream.Current()
		if chunk == "" {
			continue
		}
		n, err := io.WriteString(w, chunk)
		written += n
		if err != nil {
			ctxzap.Info(ctx, "client went away during stream", zap.Error(err))
			return
		}
		_ = rc.Flush()
		chunks++
	}

	if err := stream.Err(); err != nil {
		ctxzap.Error(ctx, "stream ended with error", zap.Error(err), zap.Int("bytes", written))
		return
	}

	ctxzap.Info(ctx, "stream finished", zap.Int("chunks", chunks), zap.Int("bytes", written))
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	code := entity.CodeFor(err)
	if code == entity.CodeInternalError {
		ctxzap.Error(ctx, "chat request failed", zap.Error(err))
	} else {
		ctxzap.Info(ctx, "chat request rejected", zap.String("code", string(code)), zap.Error(err))
	}
	response.DomainError(w, r, err, internalMessage)
}
