package admin

import (
	"context"
	"net/http"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/logger"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase IndexingUsecase
}

func NewHandler(usecase IndexingUsecase) *Handler {
	return &Handler{usecase: usecase}
}

type syncResponse struct {
	Results *entity.SyncResult `json:"results"`
}

// SyncSegments handles POST /api/admin/embeddings/sync-segments
func (h *Handler) SyncSegments(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SyncSegments")
	h.sync(ctx, w, r, h.usecase.SyncSegments, "Failed to sync segment embeddings")
}

// SyncContentItems handles POST /api/admin/embeddings/sync
func (h *Handler) SyncContentItems(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SyncContentItems")
	h.sync(ctx, w, r, h.usecase.SyncContentItems, "Failed to sync embeddings")
}

func (h *Handler) sync(ctx context.Context, w http.ResponseWriter, r *http.Request, run func(context.Context) (*entity.SyncResult, error), internalMessage string) {
	result, err := run(ctx)
	if err != nil {
		ctxzap.Error(ctx, "embedding sync failed", zap.Error(err))
		response.DomainError(w, r, err, internalMessage)
		return
	}

	ctxzap.Info(ctx, "embedding sync finished",
		zap.Int("processed", result.Processed),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
	)

	response.Success(w, syncResponse{Results: result})
}
