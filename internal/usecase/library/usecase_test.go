package library

import (
	"context"
	"errors"
	"testing"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	count       int
	created     int
	deleted     []string
	listFilter  *string
	bookmarked  []string
	removed     []string
	err         error
	highlights  []entity.Highlight
	recommended [][]string
	recs        []entity.Recommendation
}

func (f *fakeStore) CountHighlights(context.Context, string, string) (int, error) {
	return f.count, f.err
}

func (f *fakeStore) CreateHighlight(_ context.Context, userID string, req *entity.CreateHighlightRequest) (*entity.Highlight, error) {
	f.created++
	return &entity.Highlight{ID: "h-1", UserID: userID, ContentItemID: req.ContentItemID, Color: req.Color}, nil
}

func (f *fakeStore) ListHighlights(_ context.Context, _ string, contentItemID *string) ([]entity.Highlight, error) {
	f.listFilter = contentItemID
	return f.highlights, f.err
}

func (f *fakeStore) DeleteHighlight(_ context.Context, _ string, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeStore) Bookmark(_ context.Context, _ string, id string) error {
	f.bookmarked = append(f.bookmarked, id)
	return f.err
}

func (f *fakeStore) Unbookmark(_ context.Context, _ string, id string) error {
	f.removed = append(f.removed, id)
	return f.err
}

func (f *fakeStore) Recommend(_ context.Context, ids []string) ([]entity.Recommendation, error) {
	f.recommended = append(f.recommended, ids)
	return f.recs, f.err
}

func newTestUsecase(store *fakeStore) *LibraryUsecase {
	return NewUsecase(store, store, store, zap.NewNop())
}

func TestCreateHighlight(t *testing.T) {
	req := &entity.CreateHighlightRequest{ContentItemID: "item-1", HighlightedText: "x", Color: "yellow"}

	t.Run("under the limit", func(t *testing.T) {
		store := &fakeStore{count: MaxHighlightsPerItem - 1}
		h, err := newTestUsecase(store).CreateHighlight(context.Background(), "user-1", req)
		require.NoError(t, err)
		assert.Equal(t, "h-1", h.ID)
		assert.Equal(t, 1, store.created)
	})

	t.Run("at the limit is forbidden", func(t *testing.T) {
		store := &fakeStore{count: MaxHighlightsPerItem}
		_, err := newTestUsecase(store).CreateHighlight(context.Background(), "user-1", req)
		assert.ErrorIs(t, err, entity.ErrHighlightLimit)
		assert.Equal(t, entity.CodeForbidden, entity.CodeFor(err))
		assert.Zero(t, store.created)
	})

	t.Run("count failure", func(t *testing.T) {
		store := &fakeStore{err: errors.New("db down")}
		_, err := newTestUsecase(store).CreateHighlight(context.Background(), "user-1", req)
		assert.Error(t, err)
		assert.Equal(t, entity.CodeInternalError, entity.CodeFor(err))
	})
}

func TestListHighlights(t *testing.T) {
	store := &fakeStore{}
	item := "item-1"

	list, err := newTestUsecase(store).ListHighlights(context.Background(), "user-1", &item)
	require.NoError(t, err)
	assert.NotNil(t, list, "empty list encodes as []")
	assert.Equal(t, &item, store.listFilter)
}

func TestBookmarks(t *testing.T) {
	store := &fakeStore{}
	uc := newTestUsecase(store)

	require.NoError(t, uc.AddBookmark(context.Background(), "user-1", "item-1"))
	require.NoError(t, uc.RemoveBookmark(context.Background(), "user-1", "item-2"))
	require.NoError(t, uc.DeleteHighlight(context.Background(), "user-1", "h-9"))

	assert.Equal(t, []string{"item-1"}, store.bookmarked)
	assert.Equal(t, []string{"item-2"}, store.removed)
	assert.Equal(t, []string{"h-9"}, store.deleted)
}

func TestRecommend(t *testing.T) {
	t.Run("empty history skips the lookup", func(t *testing.T) {
		store := &fakeStore{}
		recs, err := newTestUsecase(store).Recommend(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, recs)
		assert.NotNil(t, recs)
		assert.Empty(t, store.recommended)
	})

	t.Run("delegates to the recommender", func(t *testing.T) {
		store := &fakeStore{recs: []entity.Recommendation{{ID: "r-1", Title: "Deep Work"}}}
		recs, err := newTestUsecase(store).Recommend(context.Background(), []string{"a"})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, [][]string{{"a"}}, store.recommended)
	})

	t.Run("failure", func(t *testing.T) {
		store := &fakeStore{err: entity.ErrRecommendationFailed}
		_, err := newTestUsecase(store).Recommend(context.Background(), []string{"a"})
		assert.ErrorIs(t, err, entity.ErrRecommendationFailed)
	})
}
