package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Jseow008/ThePlayBook-sub001/internal/api/middleware"
	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	logged []entity.ActivityEntry
	ranges []entity.ActivityRange
	days   []entity.ActivityDay
	err    error
}

func (f *fakeUsecase) Log(_ context.Context, _ string, entry entity.ActivityEntry) error {
	f.logged = append(f.logged, entry)
	return f.err
}

func (f *fakeUsecase) History(_ context.Context, _ string, rng entity.ActivityRange) ([]entity.ActivityDay, error) {
	f.ranges = append(f.ranges, rng)
	return f.days, f.err
}

func newRouter(uc *fakeUsecase) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), &entity.User{ID: "user-1"})))
		})
	})
	RegisterRoutes(r, NewHandler(uc, validator.NewValidator(config.Default().ChatCfg)))
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) entity.ErrorCode {
	t.Helper()
	var body entity.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestLog(t *testing.T) {
	t.Run("defaults to a minute today", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := do(newRouter(uc), http.MethodPost, "/activity/log", `{}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		assert.Equal(t, []entity.ActivityEntry{{DurationSeconds: 60}}, uc.logged)
	})

	t.Run("explicit day", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := do(newRouter(uc), http.MethodPost, "/activity/log", `{"duration_seconds":300,"activity_date":"2026-02-24"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []entity.ActivityEntry{{Date: "2026-02-24", DurationSeconds: 300}}, uc.logged)
	})

	t.Run("negative duration", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := do(newRouter(uc), http.MethodPost, "/activity/log", `{"duration_seconds":-5}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.CodeValidationError, errorCode(t, rec))
		assert.Empty(t, uc.logged)
	})

	t.Run("store failure", func(t *testing.T) {
		uc := &fakeUsecase{err: errors.New("boom")}
		rec := do(newRouter(uc), http.MethodPost, "/activity/log", `{}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHistory(t *testing.T) {
	t.Run("range is passed through", func(t *testing.T) {
		uc := &fakeUsecase{days: []entity.ActivityDay{{ActivityDate: "2026-02-01", DurationSeconds: 120}}}
		rec := do(newRouter(uc), http.MethodGet, "/activity/history?start=2026-02-01&end=2026-02-28", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"activity_date":"2026-02-01","duration_seconds":120,"pages_read":null}]`, rec.Body.String())

		require.Len(t, uc.ranges, 1)
		assert.Equal(t, "2026-02-01", *uc.ranges[0].Start)
		assert.Equal(t, "2026-02-28", *uc.ranges[0].End)
	})

	t.Run("inverted range", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := do(newRouter(uc), http.MethodGet, "/activity/history?start=2026-03-01&end=2026-02-01", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.CodeValidationError, errorCode(t, rec))
		assert.Empty(t, uc.ranges)
	})
}
