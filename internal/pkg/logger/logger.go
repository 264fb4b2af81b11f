package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// From returns the request logger, or a no-op logger outside a request.
func From(ctx context.Context) *zap.Logger {
	return ctxzap.Extract(ctx)
}

// AddFields returns a context whose logger carries fields on every line.
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	return ctxzap.ToContext(ctx, From(ctx).With(fields...))
}

// WithAction names the handler or job the following lines belong to.
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithUserID tags the following lines with the authenticated user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return AddFields(ctx, zap.String("user_id", userID))
}
