package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewConnector_RequiresURLAndKey(t *testing.T) {
	_, err := NewConnector(config.SupabaseConfig{}, time.Minute, zap.NewNop())
	assert.Error(t, err)

	_, err = NewConnector(config.SupabaseConfig{URL: "https://example.supabase.co"}, time.Minute, zap.NewNop())
	assert.Error(t, err)
}

func TestConnector_EmptyTokenIsUnauthorized(t *testing.T) {
	c, err := NewConnector(config.SupabaseConfig{URL: "https://example.supabase.co", AnonKey: "anon"}, time.Minute, zap.NewNop())
	require.NoError(t, err)

	_, err = c.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestConnector_CachedSession(t *testing.T) {
	c, err := NewConnector(config.SupabaseConfig{URL: "https://example.supabase.co", AnonKey: "anon"}, time.Minute, zap.NewNop())
	require.NoError(t, err)

	want := &entity.User{ID: "u1", Email: "a@b.c"}
	c.sessions.SetDefault("tok", want)

	got, err := c.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestMockConnector(t *testing.T) {
	m := NewMockConnector(zap.NewNop())
	ctx := context.Background()

	_, err := m.Authenticate(ctx, "")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	user, err := m.Authenticate(ctx, "reader-token")
	require.NoError(t, err)
	isAdmin, _ := m.IsAdmin(ctx, user.ID)
	assert.False(t, isAdmin)

	admin, err := m.Authenticate(ctx, "admin-token")
	require.NoError(t, err)
	isAdmin, _ = m.IsAdmin(ctx, admin.ID)
	assert.True(t, isAdmin)
}
