package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers admin routes behind requireAdmin and limit.
func RegisterRoutes(r chi.Router, h *Handler, requireAdmin, limit func(http.Handler) http.Handler) {
	r.Route("/admin/embeddings", func(r chi.Router) {
		r.Use(requireAdmin, limit)
		r.Post("/sync-segments", h.SyncSegments)
		r.Post("/sync", h.SyncContentItems)
	})
}
