package ratelimit

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AnonymousClient is the identity used when no trusted header carries a valid address.
const AnonymousClient = "anonymous"

const maxClientIDLength = 64

// ClientID returns the caller address from the first proxy header that holds a
// valid IPv4 or IPv6 literal. Headers are consulted in trust order.
func ClientID(r *http.Request) string {
	candidates := []string{
		r.Header.Get("Cf-Connecting-Ip"),
		r.Header.Get("X-Real-Ip"),
		firstForwarded(r.Header.Get("X-Forwarded-For")),
	}

	for _, candidate := range candidates {
		if isValidIP(candidate) {
			return candidate
		}
	}

	return AnonymousClient
}

func firstForwarded(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}

func isValidIP(value string) bool {
	if value == "" || len(value) > maxClientIDLength {
		return false
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return false
	}
	return addr.Zone() == ""
}

// New selects the Redis limiter when a URL is configured and the in-process
// one otherwise. A malformed URL is an error; an unreachable server is not.
func New(redisURL string, local *Local, logger *zap.Logger, opts ...RedisOption) (Limiter, func() error, error) {
	if redisURL == "" {
		logger.Info("Rate limiter using in-process store")
		return local, func() error { return nil }, nil
	}

	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(redisOpts)

	logger.Info("Rate limiter using Redis store", zap.String("addr", redisOpts.Addr))
	return NewRedis(client, local, logger, opts...), client.Close, nil
}
