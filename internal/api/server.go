package api

import (
	"net/http"
	"time"

	activityapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/activity"
	adminapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/admin"
	catalogapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/catalog"
	chatapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/chat"
	"github.com/Jseow008/ThePlayBook-sub001/internal/api/docs"
	feedbackapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/feedback"
	healthapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/health"
	libraryapi "github.com/Jseow008/ThePlayBook-sub001/internal/api/library"
	"github.com/Jseow008/ThePlayBook-sub001/internal/api/middleware"
	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// requestTimeout bounds the short JSON routes.
const requestTimeout = 60 * time.Second

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Chat     *chatapi.Handler
	Library  *libraryapi.Handler
	Feedback *feedbackapi.Handler
	Catalog  *catalogapi.Handler
	Activity *activityapi.Handler
	Admin    *adminapi.Handler
	Health   *healthapi.Handler
}

// Guards are the access checks shared by the routes.
type Guards struct {
	Authn   middleware.Authenticator
	Admins  middleware.AdminChecker
	Limiter ratelimit.Limiter
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h Handlers, g Guards, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)              // Add request ID
	r.Use(middleware.Logger(logger))            // Log requests
	r.Use(chimiddleware.Recoverer)              // Recover from panics
	r.Use(middleware.CORS(cfg.AllowedOrigins)) // Handle CORS

	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	limits := cfg.RateLimitCfg
	limit := func(route string, p config.PolicyConfig, perUser bool) func(http.Handler) http.Handler {
		return middleware.RateLimit(g.Limiter, middleware.RateRule{
			Route:   route,
			Policy:  ratelimit.Policy{Limit: p.Limit, Window: p.Window},
			PerUser: perUser,
		})
	}

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(requestTimeout))
			healthapi.RegisterRoutes(r, h.Health)
			libraryapi.RegisterPublicRoutes(r, h.Library)
			catalogapi.RegisterRoutes(r, h.Catalog, limit("random", limits.Random, false))

			// Reading a vote is allowed anonymously, so feedback brings its own auth.
			feedbackapi.RegisterRoutes(r, h.Feedback, feedbackapi.Guards{
				OptionalAuth: middleware.OptionalAuth(g.Authn),
				Auth:         middleware.Auth(g.Authn),
				Limit:        limit("feedback", limits.Feedback, false),
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(g.Authn))

			// Streaming answers and sync batches outlive the default timeout.
			chatapi.RegisterRoutes(r, h.Chat,
				limit("chat", limits.Chat, false),
				limit("chat-author", limits.AuthorChat, true),
			)
			adminapi.RegisterRoutes(r, h.Admin,
				middleware.RequireAdmin(g.Admins),
				limit("admin-sync", limits.AdminSync, false),
			)

			r.Group(func(r chi.Router) {
				r.Use(chimiddleware.Timeout(requestTimeout))
				libraryapi.RegisterRoutes(r, h.Library, libraryapi.Limits{
					HighlightWrite: limit("highlights-write", limits.HighlightWrite, false),
					HighlightRead:  limit("highlights-read", limits.HighlightRead, false),
					Bookmark:       limit("bookmarks", limits.Bookmark, false),
				})
				activityapi.RegisterRoutes(r, h.Activity)
			})
		})
	})

	return r
}
