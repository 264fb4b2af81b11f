package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Limits holds the per-route rate limit middleware.
type Limits struct {
	HighlightWrite func(http.Handler) http.Handler
	HighlightRead  func(http.Handler) http.Handler
	Bookmark       func(http.Handler) http.Handler
}

// RegisterRoutes registers the per-user library routes. They expect an
// authenticated user in the context.
func RegisterRoutes(r chi.Router, h *Handler, limits Limits) {
	r.Route("/library", func(r chi.Router) {
		r.Route("/highlights", func(r chi.Router) {
			r.With(limits.HighlightWrite).Post("/", h.CreateHighlight)
			r.With(limits.HighlightRead).Get("/", h.ListHighlights)
			r.With(limits.HighlightWrite).Delete("/{id}", h.DeleteHighlight)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(limits.Bookmark)
			r.Post("/", h.AddBookmark)
			r.Delete("/", h.RemoveBookmark)
		})
	})
}

// RegisterPublicRoutes registers routes that need no session.
func RegisterPublicRoutes(r chi.Router, h *Handler) {
	r.Post("/recommendations", h.Recommend)
}
