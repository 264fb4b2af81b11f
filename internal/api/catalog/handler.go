package catalog

import (
	"context"
	"net/http"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/logger"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/request"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const randomCacheControl = "public, s-maxage=60, stale-while-revalidate=300"

type Handler struct {
	usecase   CatalogUsecase
	validator *validator.Validator
}

func NewHandler(usecase CatalogUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Random handles GET /api/random
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RandomContent")

	item, err := h.usecase.Random(ctx)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch content")
		return
	}

	w.Header().Set("Cache-Control", randomCacheControl)
	response.Success(w, item)
}

// Batch handles POST /api/content/batch
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ContentBatch")

	var req entity.ContentBatchRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch content")
		return
	}
	if err := h.validator.ValidateContentBatch(&req); err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch content")
		return
	}

	items, err := h.usecase.Batch(ctx, req.IDs)
	if err != nil {
		h.respondError(ctx, w, r, err, "Failed to fetch content")
		return
	}

	response.Success(w, items)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	if entity.CodeFor(err) == entity.CodeInternalError {
		ctxzap.Error(ctx, "catalog request failed", zap.Error(err))
	} else {
		ctxzap.Info(ctx, "catalog request rejected", zap.Error(err))
	}
	response.DomainError(w, r, err, internalMessage)
}
