package middleware

import (
	"net/http"

	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/Jseow008/ThePlayBook-sub001/internal/ratelimit"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RateRule names a throttled route and its policy. PerUser adds the
// authenticated user id as the key's sub-key, so it must run after Auth.
type RateRule struct {
	Route   string
	Policy  ratelimit.Policy
	PerUser bool
}

// RateLimit answers 429 with Retry-After once the caller exceeds the rule.
func RateLimit(limiter ratelimit.Limiter, rule RateRule) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subKey := ratelimit.DefaultSubKey
			if rule.PerUser {
				if user, ok := UserFrom(r.Context()); ok {
					subKey = user.ID
				}
			}

			key := ratelimit.Key(rule.Route, subKey, ratelimit.ClientID(r))
			decision := limiter.Check(r.Context(), key, rule.Policy)
			if !decision.Allowed {
				ctxzap.Info(r.Context(), "rate limited",
					zap.String("route", rule.Route),
					zap.Duration("retry_after", decision.RetryAfter),
				)
				response.RateLimited(w, r, decision.RetryAfterSeconds())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
