package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

const (
	rpcName    = "match_recommendations"
	matchCount = 6
)

// RPCCaller is the slice of the Supabase client used here.
type RPCCaller interface {
	Rpc(name, count string, rpcBody interface{}) string
}

// Connector asks the database for items similar to the ones a reader finished.
type Connector struct {
	client RPCCaller
	cache  *cache.Cache
	logger *zap.Logger
}

func NewConnector(cfg config.SupabaseConfig, ttl time.Duration, logger *zap.Logger) (*Connector, error) {
	client, err := supabase.NewClient(cfg.URL, cfg.AnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return NewConnectorWithClient(client, ttl, logger), nil
}

func NewConnectorWithClient(client RPCCaller, ttl time.Duration, logger *zap.Logger) *Connector {
	return &Connector{
		client: client,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Recommend returns up to six items close to completedIDs. Results are cached
// per distinct set of ids.
func (c *Connector) Recommend(ctx context.Context, completedIDs []string) ([]entity.Recommendation, error) {
	key := cacheKey(completedIDs)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]entity.Recommendation), nil
	}

	raw := c.client.Rpc(rpcName, "", map[string]any{
		"completed_ids": completedIDs,
		"match_count":   matchCount,
	})
	if raw == "" {
		return nil, fmt.Errorf("%w: empty rpc response", entity.ErrRecommendationFailed)
	}

	recs := []entity.Recommendation{}
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		ctxzap.Warn(ctx, "unexpected recommendation rpc response", zap.String("body", truncate(raw, 200)))
		return nil, fmt.Errorf("%w: %w", entity.ErrRecommendationFailed, err)
	}

	c.cache.SetDefault(key, recs)
	return recs, nil
}

func cacheKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
