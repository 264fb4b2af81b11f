package activity

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the reading activity routes. They expect an
// authenticated user in the context.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/activity", func(r chi.Router) {
		r.Post("/log", h.Log)
		r.Get("/history", h.History)
	})
}
