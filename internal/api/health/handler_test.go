package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"reachable", nil, http.StatusOK, `{"status":"ok","database":"reachable","timestamp":"2026-03-01T12:00:00.000Z"}`},
		{"unreachable", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, `{"status":"degraded","database":"unreachable","timestamp":"2026-03-01T12:00:00.000Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(pingerFunc(func(context.Context) error { return tt.err }))
			h.now = func() time.Time { return fixed }

			rec := httptest.NewRecorder()
			h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
