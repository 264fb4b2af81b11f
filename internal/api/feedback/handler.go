package feedback

import (
	"context"
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

type Handler struct {
	usecase   FeedbackUsecase
	validator *validator.Validator
}

func NewHandler(usecase FeedbackUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

type statusData struct {
	// Status is null when the reader has not voted.
	Status *entity.FeedbackStatus `json:"status"`
}

type messageData struct {
	Message string `json:"message"`
}

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Status handles GET /api/feedback/content?contentId=
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "FeedbackStatus")

	contentID, err := validator.ValidateUUID("contentId", r.URL.Query().Get("contentId"))
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch feedback")
		return
	}

	var userID string
	if user, ok := middleware.UserFrom(ctx); ok {
		userID = user.ID
	}

	status, err := h.usecase.Status(ctx, userID, contentID)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch feedback")
		return
	}

	data := statusData{}
	if status != entity.FeedbackNone {
		data.Status = &status
	}
	response.Success(w, envelope{Success: true, Data: data})
}

// Submit handles POST /api/feedback/content
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitFeedback")
	user, _ := middleware.UserFrom(ctx)

	var req entity.FeedbackRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to save feedback")
		return
	}
	fb, err := h.validator.ValidateFeedback(&req)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to save feedback")
		return
	}

	if err := h.usecase.Submit(ctx, user.ID, fb); err != nil {
		h.respondError(ctx, w, r, err, "Failed to save feedback")
		return
	}

	response.Success(w, envelope{Success: true, Data: messageData{Message: "Feedback saved successfully"}})
}

// Remove handles DELETE /api/feedback/content
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RemoveFeedback")
	user, _ := middleware.UserFrom(ctx)

	var req entity.FeedbackTarget
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to remove feedback")
		return
	}
	if err := h.validator.ValidateFeedbackTarget(&req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to remove feedback")
		return
	}

	if err := h.usecase.Remove(ctx, user.ID, req.ContentID); err != nil {
		h.respondError(ctx, w, r, err, "Failed to remove feedback")
		return
	}

	response.Success(w, envelope{Success: true, Data: messageData{Message: "Feedback removed successfully"}})
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	if entity.CodeFor(err) == entity.CodeInternalError {
		ctxzap.Error(ctx, "feedback request failed", zap.Error(err))
	} else {
		ctxzap.Info(ctx, "feedback request rejected", zap.Error(err))
	}
	response.DomainError(w, r, err, internalMessage)
}
