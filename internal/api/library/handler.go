package library

import (
	"context"
	"net/http"

	"github.com/Jseow008/ThePlayBook-sub001/internal/api/middleware"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/logger"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/request"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const recommendationsCacheControl = "public, s-maxage=300, stale-while-revalidate=600"

type Handler struct {
	usecase   LibraryUsecase
	validator *validator.Validator
}

func NewHandler(usecase LibraryUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

type dataResponse struct {
	Data any `json:"data"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// CreateHighlight handles POST /api/library/highlights
func (h *Handler) CreateHighlight(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateHighlight")
	user, _ := middleware.UserFrom(ctx)

	var req entity.CreateHighlightRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to save highlight")
		return
	}
	if err := h.validator.ValidateCreateHighlight(&req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to save highlight")
		return
	}

	highlight, err := h.usecase.CreateHighlight(ctx, user.ID, &req)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to save highlight")
		return
	}

	ctxzap.Info(ctx, "highlight created",
		zap.String("highlight_id", highlight.ID),
		zap.String("content_item_id", highlight.ContentItemID),
	)

	response.Success(w, dataResponse{Data: highlight})
}

// ListHighlights handles GET /api/library/highlights
func (h *Handler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListHighlights")
	user, _ := middleware.UserFrom(ctx)

	var filter *string
	if raw := r.URL.Query().Get("content_item_id"); raw != "" {
		id, err := validator.ValidateUUID("content_item_id", raw)
		if err != nil {
			h.respondError(ctx, w, r, err, "Failed to fetch highlights")
			return
		}
		filter = &id
	}

	highlights, err := h.usecase.ListHighlights(ctx, user.ID, filter)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch highlights")
		return
	}

	response.Success(w, dataResponse{Data: highlights})
}

// DeleteHighlight handles DELETE /api/library/highlights/{id}
func (h *Handler) DeleteHighlight(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteHighlight")
	user, _ := middleware.UserFrom(ctx)

	id, err := validator.ValidateUUID("id", chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to delete highlight")
		return
	}

	if err := h.usecase.DeleteHighlight(ctx, user.ID, id); err != nil {
		h.respondError(ctx, w, r, err, "Failed to delete highlight")
		return
	}

	response.Success(w, successResponse{Success: true})
}

// AddBookmark handles POST /api/library/bookmarks
func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AddBookmark")
	h.bookmark(ctx, w, r, h.usecase.AddBookmark)
}

// RemoveBookmark handles DELETE /api/library/bookmarks
func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RemoveBookmark")
	h.bookmark(ctx, w, r, h.usecase.RemoveBookmark)
}

func (h *Handler) bookmark(ctx context.Context, w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, userID, contentItemID string) error) {
	user, _ := middleware.UserFrom(ctx)

	var req entity.BookmarkRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to update bookmark")
		return
	}
	if err := h.validator.ValidateBookmark(&req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to update bookmark")
		return
	}

	if err := apply(ctx, user.ID, req.ContentItemID); err != nil {
		h.respondError(ctx, w, r, err, "Failed to update bookmark")
		return
	}

	response.Success(w, successResponse{Success: true})
}

// Recommend handles POST /api/recommendations
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Recommend")

	var req entity.RecommendationRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch recommendations")
		return
	}
	if err := h.validator.ValidateRecommendation(&req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch recommendations")
		return
	}

	recs, err := h.usecase.Recommend(ctx, req.CompletedIDs)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch recommendations")
		return
	}

	ctxzap.Debug(ctx, "recommendations served",
		zap.Int("completed", len(req.CompletedIDs)),
		zap.Int("results", len(recs)),
	)

	if len(req.CompletedIDs) > 0 {
		w.Header().Set("Cache-Control", recommendationsCacheControl)
	}
	response.Success(w, recs)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	if entity.CodeFor(err) == entity.CodeInternalError {
		ctxzap.Error(ctx, "library request failed", zap.Error(err))
	} else {
		ctxzap.Info(ctx, "library request rejected", zap.Error(err))
	}
	response.DomainError(w, r, err, internalMessage)
}
