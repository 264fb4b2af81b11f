package auth

import (
	"context"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	MockUserID  = "00000000-0000-4000-8000-000000000001"
	MockAdminID = "00000000-0000-4000-8000-0000000000ad"
)

// MockConnector accepts any non-empty token. Tokens prefixed with "admin"
// resolve to MockAdminID, everything else to MockUserID.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, entity.ErrUnauthorized
	}

	ctxzap.Info(ctx, "[MOCK] authenticating token")

	if strings.HasPrefix(token, "admin") {
		return &entity.User{ID: MockAdminID, Email: "admin@example.com"}, nil
	}
	return &entity.User{ID: MockUserID, Email: "reader@example.com"}, nil
}

func (m *MockConnector) IsAdmin(_ context.Context, userID string) (bool, error) {
	return userID == MockAdminID, nil
}
