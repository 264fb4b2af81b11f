package ratelimit

import (
	"context"
	"sync"
	"time"
)

const defaultSweepThreshold = 10000

// bucket is the sliding log of one key. Timestamps are kept in arrival order.
type bucket struct {
	stamps []time.Time
	window time.Duration
}

// Local is the in-process sliding-log limiter. It is also the fallback of
// the Redis limiter.
type Local struct {
	mu             sync.Mutex
	buckets        map[string]*bucket
	sweepThreshold int
	now            func() time.Time
}

type LocalOption func(*Local)

// WithSweepThreshold sets the store size above which expired keys are purged.
func WithSweepThreshold(n int) LocalOption {
	return func(l *Local) {
		if n > 0 {
			l.sweepThreshold = n
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) LocalOption {
	return func(l *Local) {
		l.now = now
	}
}

func NewLocal(opts ...LocalOption) *Local {
	l := &Local{
		buckets:        make(map[string]*bucket),
		sweepThreshold: defaultSweepThreshold,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check implements Limiter.
func (l *Local) Check(_ context.Context, key string, policy Policy) Decision {
	if !policy.Valid() {
		return rejectInvalid(policy)
	}
	d := l.check(key, policy)
	observe(backendLocal, d)
	return d
}

func (l *Local) check(key string, policy Policy) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-policy.Window)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{}
		l.buckets[key] = b
	}
	b.window = policy.Window
	b.stamps = pruneBefore(b.stamps, windowStart)

	if len(b.stamps) >= policy.Limit {
		// The oldest stamp leaving the window frees the next slot.
		retry := b.stamps[0].Add(policy.Window).Sub(now)
		return Decision{Allowed: false, RetryAfter: clampRetry(retry, policy.Window)}
	}

	b.stamps = append(b.stamps, now)

	if len(l.buckets) > l.sweepThreshold {
		l.sweep(now)
	}

	return Decision{Allowed: true}
}

// Len returns the number of tracked keys.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops every key whose stamps have all left their own window.
// Caller holds l.mu.
func (l *Local) sweep(now time.Time) {
	for key, b := range l.buckets {
		if len(b.stamps) == 0 || !b.stamps[len(b.stamps)-1].After(now.Add(-b.window)) {
			delete(l.buckets, key)
		}
	}
	sweepsTotal.Inc()
}

// pruneBefore drops stamps at or before start, reusing the backing array.
func pruneBefore(stamps []time.Time, start time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(start) {
		i++
	}
	if i == 0 {
		return stamps
	}
	return append(stamps[:0], stamps[i:]...)
}

var _ Limiter = (*Local)(nil)
