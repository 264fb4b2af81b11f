package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat routes. Each route gets its own limiter.
func RegisterRoutes(r chi.Router, h *Handler, chatLimit, authorLimit func(http.Handler) http.Handler) {
	r.Route("/chat", func(r chi.Router) {
		r.With(chatLimit).Post("/", h.Chat)
		r.With(authorLimit).Post("/author", h.AuthorChat)
	})
}
