package llm

import (
	"context"
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector streams a fixed answer word by word.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Stream(ctx context.Context, req *entity.CompletionRequest) (entity.TokenStream, error) {
	ctxzap.Info(ctx, "[MOCK] streaming completion", zap.Int("messages", len(req.Messages)))

	answer := "This is a mock answer based on your library."
	if n := len(req.Messages); n > 0 {
		answer = "You asked: " + req.Messages[n-1].Content
	}

	words := strings.SplitAfter(answer, " ")
	return NewSliceStream(words...), nil
}

// SliceStream is a TokenStream over fixed chunks.
type SliceStream struct {
	chunks []string
	pos    int
	err    error
	closed bool
}

func NewSliceStream(chunks ...string) *SliceStream {
	return &SliceStream{chunks: chunks, pos: -1}
}

// WithError makes the stream report err after the last chunk.
func (s *SliceStream) WithError(err error) *SliceStream {
	s.err = err
	return s
}

func (s *SliceStream) Next() bool {
	if s.closed || s.pos+1 >= len(s.chunks) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceStream) Current() string {
	if s.pos < 0 || s.pos >= len(s.chunks) {
		return ""
	}
	return s.chunks[s.pos]
}

func (s *SliceStream) Err() error {
	if s.pos+1 >= len(s.chunks) {
		return s.err
	}
	return nil
}

func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *SliceStream) Closed() bool {
	return s.closed
}
