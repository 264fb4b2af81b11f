package feedback

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
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/response"
	"github.com/Jseow008/ThePlayBook-sub001/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemID = "6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b"

type fakeUsecase struct {
	status      entity.FeedbackStatus
	statusUsers []string
	submitted   []*entity.ContentFeedback
	removed     []string
	err         error
}

func (f *fakeUsecase) Status(_ context.Context, userID, _ string) (entity.FeedbackStatus, error) {
	f.statusUsers = append(f.statusUsers, userID)
	return f.status, f.err
}

func (f *fakeUsecase) Submit(_ context.Context, _ string, fb *entity.ContentFeedback) error {
	f.submitted = append(f.submitted, fb)
	return f.err
}

func (f *fakeUsecase) Remove(_ context.Context, _ string, contentID string) error {
	f.removed = append(f.removed, contentID)
	return f.err
}

func pass(next http.Handler) http.Handler { return next }

func signedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), &entity.User{ID: "user-1"})))
	})
}

func newRouter(uc *fakeUsecase, optional func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	h := NewHandler(uc, validator.NewValidator(config.Default().ChatCfg))
	RegisterRoutes(r, h, Guards{OptionalAuth: optional, Auth: signedIn, Limit: pass})
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) entity.ErrorBody {
	t.Helper()
	var body entity.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestStatus(t *testing.T) {
	t.Run("anonymous reader", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := do(newRouter(uc, pass), http.MethodGet, "/feedback/content?contentId="+itemID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":{"status":null}}`, rec.Body.String())
		assert.Equal(t, []string{""}, uc.statusUsers)
	})

	t.Run("signed in with a vote", func(t *testing.T) {
		uc := &fakeUsecase{status: entity.FeedbackDown}
		rec := do(newRouter(uc, signedIn), http.MethodGet, "/feedback/content?contentId="+itemID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":{"status":"down"}}`, rec.Body.String())
		assert.Equal(t, []string{"user-1"}, uc.statusUsers)
	})

	t.Run("malformed content id", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := do(newRouter(uc, pass), http.MethodGet, "/feedback/content?contentId=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.CodeValidationError, errorBody(t, rec).Code)
		assert.Empty(t, uc.statusUsers)
	})

	t.Run("store failure hides details", func(t *testing.T) {
		uc := &fakeUsecase{err: errors.New("connection reset")}
		rec := do(newRouter(uc, signedIn), http.MethodGet, "/feedback/content?contentId="+itemID, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to fetch feedback", errorBody(t, rec).Message)
	})
}

func TestSubmit(t *testing.T) {
	t.Run("saves the vote", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := do(newRouter(uc, pass), http.MethodPost, "/feedback/content",
			`{"content_id":"`+itemID+`","is_positive":false,"reason":"too basic"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":{"message":"Feedback saved successfully"}}`, rec.Body.String())
		require.Len(t, uc.submitted, 1)
		assert.False(t, uc.submitted[0].IsPositive)
		assert.Equal(t, "too basic", *uc.submitted[0].Reason)
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := do(newRouter(&fakeUsecase{}, pass), http.MethodPost, "/feedback/content", `{"content_id":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := errorBody(t, rec)
		assert.Equal(t, entity.CodeInvalidJSON, body.Code)
		assert.Equal(t, response.InvalidJSONMessage, body.Message)
	})

	t.Run("missing vote", func(t *testing.T) {
		uc := &fakeUsecase{}
		rec := do(newRouter(uc, pass), http.MethodPost, "/feedback/content", `{"content_id":"`+itemID+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, entity.CodeValidationError, errorBody(t, rec).Code)
		assert.Empty(t, uc.submitted)
	})

	t.Run("unknown content", func(t *testing.T) {
		uc := &fakeUsecase{err: entity.ErrContentNotFound}
		rec := do(newRouter(uc, pass), http.MethodPost, "/feedback/content",
			`{"content_id":"`+itemID+`","is_positive":true}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRemove(t *testing.T) {
	uc := &fakeUsecase{}
	h := newRouter(uc, pass)

	rec := do(h, http.MethodDelete, "/feedback/content", `{"content_id":"`+strings.ToUpper(itemID)+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"message":"Feedback removed successfully"}}`, rec.Body.String())
	assert.Equal(t, []string{itemID}, uc.removed)

	rec = do(h, http.MethodDelete, "/feedback/content", `{"content_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, uc.removed, 1)
}
