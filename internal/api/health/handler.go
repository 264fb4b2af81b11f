package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db  Pinger
	now func() time.Time
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db, now: time.Now}
}

type statusResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		ctxzap.Warn(r.Context(), "database ping failed", zap.Error(err))
		response.JSON(w, http.StatusServiceUnavailable, statusResponse{
			Status:    "degraded",
			Database:  "unreachable",
			Timestamp: h.timestamp(),
		})
		return
	}

	response.Success(w, statusResponse{
		Status:    "ok",
		Database:  "reachable",
		Timestamp: h.timestamp(),
	})
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
