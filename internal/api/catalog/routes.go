package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the public catalog reads. randomLimit throttles
// the random pick.
func RegisterRoutes(r chi.Router, h *Handler, randomLimit func(http.Handler) http.Handler) {
	r.With(randomLimit).Get("/random", h.Random)
	r.Post("/content/batch", h.Batch)
}
