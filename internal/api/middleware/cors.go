package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins. With "*" any origin is echoed back
// but credentials are not advertised.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:       allowedOrigins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:       []string{"Retry-After", "X-Request-Id"},
		AllowCredentials:     !slices.Contains(allowedOrigins, "*"),
		MaxAge:               600,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
