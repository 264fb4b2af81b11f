package recommendation

import (
	"context"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector recommends one fixed item for any non-empty input.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Recommend(ctx context.Context, completedIDs []string) ([]entity.Recommendation, error) {
	ctxzap.Info(ctx, "[MOCK] recommending", zap.Int("completed", len(completedIDs)))

	similarity := 0.82
	return []entity.Recommendation{{
		ID:         "00000000-0000-4000-8000-00000000c001",
		Title:      "Mock Recommendation",
		Type:       "book",
		Similarity: &similarity,
	}}, nil
}
