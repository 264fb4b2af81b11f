package feedback

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Guards holds the middleware in front of the feedback routes. Reading a
// vote works without a session; changing one needs it.
type Guards struct {
	OptionalAuth func(http.Handler) http.Handler
	Auth         func(http.Handler) http.Handler
	Limit        func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, h *Handler, g Guards) {
	r.Route("/feedback/content", func(r chi.Router) {
		r.With(g.OptionalAuth, g.Limit).Get("/", h.Status)
		r.With(g.Auth, g.Limit).Post("/", h.Submit)
		r.With(g.Auth).Delete("/", h.Remove)
	})
}
