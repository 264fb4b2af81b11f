package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

const adminRole = "admin"

type profile struct {
	Role string `json:"role"`
}

// Connector verifies Supabase access tokens and reads profile roles.
// Verified sessions are cached for the configured TTL.
type Connector struct {
	client   *supabase.Client
	admin    *supabase.Client
	sessions *cache.Cache
	logger   *zap.Logger
}

func NewConnector(cfg config.SupabaseConfig, sessionTTL time.Duration, logger *zap.Logger) (*Connector, error) {
	if cfg.URL == "" || cfg.AnonKey == "" {
		return nil, fmt.Errorf("supabase URL and anon key are required")
	}

	client, err := supabase.NewClient(cfg.URL, cfg.AnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	admin := client
	if cfg.ServiceRoleKey != "" {
		admin, err = supabase.NewClient(cfg.URL, cfg.ServiceRoleKey, nil)
		if err != nil {
			return nil, fmt.Errorf("create supabase admin client: %w", err)
		}
	}

	return &Connector{
		client:   client,
		admin:    admin,
		sessions: cache.New(sessionTTL, 2*sessionTTL),
		logger:   logger,
	}, nil
}

// Authenticate resolves an access token to its user.
func (c *Connector) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, entity.ErrUnauthorized
	}

	if cached, ok := c.sessions.Get(token); ok {
		return cached.(*entity.User), nil
	}

	resp, err := c.client.Auth.WithToken(token).GetUser()
	if err != nil || resp == nil {
		ctxzap.Debug(ctx, "supabase rejected access token", zap.Error(err))
		return nil, entity.ErrUnauthorized
	}

	user := &entity.User{ID: resp.ID.String(), Email: resp.Email}
	c.sessions.SetDefault(token, user)

	return user, nil
}

// IsAdmin reports whether the user's profile carries the admin role. A missing
// profile is not an admin.
func (c *Connector) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var p profile
	_, err := c.admin.From("profiles").
		Select("role", "", false).
		Eq("id", userID).
		Single().
		ExecuteTo(&p)
	if err != nil {
		ctxzap.Warn(ctx, "failed to load profile role", zap.String("user_id", userID), zap.Error(err))
		return false, nil
	}

	return p.Role == adminRole, nil
}
