package activity

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
	usecase   ActivityUsecase
	validator *validator.Validator
}

func NewHandler(usecase ActivityUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

// Log handles POST /api/activity/log
func (h *Handler) Log(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "LogActivity")
	user, _ := middleware.UserFrom(ctx)

	var req entity.ActivityLogRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to log activity")
		return
	}
	entry, err := h.validator.ValidateActivityLog(&req)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to log activity")
		return
	}

	if err := h.usecase.Log(ctx, user.ID, *entry); err != nil {
		h.respondError(ctx, w, r, err, "Failed to log activity")
		return
	}

	response.Success(w, successResponse{Success: true})
}

// History handles GET /api/activity/history?start=&end=
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ActivityHistory")
	user, _ := middleware.UserFrom(ctx)

	query := r.URL.Query()
	rng, err := h.validator.ValidateActivityRange(query.Get("start"), query.Get("end"))
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch reading history")
		return
	}

	days, err := h.usecase.History(ctx, user.ID, rng)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch reading history")
		return
	}

	response.Success(w, days)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	if entity.CodeFor(err) == entity.CodeInternalError {
		ctxzap.Error(ctx, "activity request failed", zap.Error(err))
	} else {
		ctxzap.Info(ctx, "activity request rejected", zap.Error(err))
	}
	response.DomainError(w, r, err, internalMessage)
}
