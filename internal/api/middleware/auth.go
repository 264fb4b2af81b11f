package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/logger"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AccessTokenCookie is read when no Authorization header is sent.
const AccessTokenCookie = "sb-access-token"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type userKey struct{}

// UserFrom returns the user stored by Auth.
func UserFrom(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userKey{}).(*entity.User)
	return user, ok && user != nil
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// Auth rejects requests without a valid Supabase session with 401.
func Auth(authn Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authn.Authenticate(r.Context(), accessToken(r))
			if err != nil {
				ctxzap.Info(r.Context(), "request not authenticated", zap.Error(err))
				response.Error(w, r, entity.CodeUnauthorized, "Please log in to continue.")
				return
			}

			ctx := logger.WithUserID(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}

// OptionalAuth stores the user when a valid session is sent and otherwise
// lets the request through anonymously.
func OptionalAuth(authn Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				ctxzap.Debug(r.Context(), "ignoring invalid session", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := logger.WithUserID(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}

// RequireAdmin must run after Auth. Non-admins get 401 like anonymous callers.
func RequireAdmin(checker AdminChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok {
				response.Error(w, r, entity.CodeUnauthorized, "Unauthorized")
				return
			}

			isAdmin, err := checker.IsAdmin(r.Context(), user.ID)
			if err != nil || !isAdmin {
				ctxzap.Warn(r.Context(), "admin access denied", zap.Error(err))
				response.Error(w, r, entity.CodeUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func accessToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}
