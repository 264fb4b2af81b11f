package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	backendRedis = "redis"
	backendLocal = "local"

	defaultRedisTimeout = 250 * time.Millisecond
	keyPrefix           = "ratelimit"
)

// slidingLogScript prunes, counts and records in one round trip so that
// concurrent instances agree on the count. Scores are unix milliseconds.
//
// KEYS[1] sorted set, ARGV: now, window, limit, member.
// Returns {1, 0} when admitted or {0, retryAfterMs} when limited.
var slidingLogScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
	local retry = window
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	if oldest[2] then
		retry = tonumber(oldest[2]) + window - now
	end
	return {0, retry}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, 0}
`)

var errUnexpectedReply = errors.New("unexpected rate limit script reply")

// slidingWindow is the Redis view of one (limit, window) policy. Keys of
// different policies never share a sorted set.
type slidingWindow struct {
	policy Policy
	prefix string
}

func newSlidingWindow(policy Policy) *slidingWindow {
	return &slidingWindow{
		policy: policy,
		prefix: fmt.Sprintf("%s:%d:%d:", keyPrefix, policy.Limit, policy.Window.Milliseconds()),
	}
}

// evalResult is the outcome of one script call: a decision or the error that
// sends the check to the fallback.
type evalResult struct {
	decision Decision
	err      error
}

func (w *slidingWindow) eval(ctx context.Context, client redis.Scripter, key string, now time.Time) evalResult {
	reply, err := slidingLogScript.Run(ctx, client,
		[]string{w.prefix + key},
		now.UnixMilli(), w.policy.Window.Milliseconds(), w.policy.Limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return evalResult{err: err}
	}
	if len(reply) != 2 {
		return evalResult{err: fmt.Errorf("%w: %v", errUnexpectedReply, reply)}
	}

	if reply[0] == 1 {
		return evalResult{decision: Decision{Allowed: true}}
	}

	retry := time.Duration(reply[1]) * time.Millisecond
	return evalResult{decision: Decision{Allowed: false, RetryAfter: clampRetry(retry, w.policy.Window)}}
}

// Redis is the distributed sliding-log limiter. Any Redis error is logged
// and the same check is answered by the in-process fallback.
type Redis struct {
	client   redis.Scripter
	fallback *Local
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	windows map[Policy]*slidingWindow
}

type RedisOption func(*Redis)

// WithTimeout bounds each script call.
func WithTimeout(d time.Duration) RedisOption {
	return func(r *Redis) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithRedisClock replaces time.Now for the scores written to Redis.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(r *Redis) {
		r.now = now
	}
}

func NewRedis(client redis.Scripter, fallback *Local, logger *zap.Logger, opts ...RedisOption) *Redis {
	if fallback == nil {
		fallback = NewLocal()
	}
	r := &Redis{
		client:   client,
		fallback: fallback,
		timeout:  defaultRedisTimeout,
		logger:   logger,
		now:      time.Now,
		windows:  make(map[Policy]*slidingWindow),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Check implements Limiter.
func (r *Redis) Check(ctx context.Context, key string, policy Policy) Decision {
	if !policy.Valid() {
		return rejectInvalid(policy)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res := r.window(policy).eval(ctx, r.client, key, r.now())
	if res.err != nil {
		r.logger.Warn("Redis rate limit check failed, using local limiter",
			zap.String("key", key),
			zap.Error(res.err))
		fallbacksTotal.Inc()
		return r.fallback.Check(ctx, key, policy)
	}

	observe(backendRedis, res.decision)
	return res.decision
}

// window returns the cached instance for the policy, creating it on first use.
func (r *Redis) window(policy Policy) *slidingWindow {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[policy]
	if !ok {
		w = newSlidingWindow(policy)
		r.windows[policy] = w
	}
	return w
}

// redisKey is the sorted set that holds the log of key under policy.
func redisKey(key string, policy Policy) string {
	return newSlidingWindow(policy).prefix + key
}

var _ Limiter = (*Redis)(nil)
