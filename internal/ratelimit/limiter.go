// Package ratelimit implements sliding-window request throttling with a
// Redis-backed variant and an in-process variant that share one decision shape.
package ratelimit

import (
	"context"
	"math"
	"time"
)

// DefaultSubKey namespaces keys that carry no user or action sub-key.
const DefaultSubKey = "global"

// Policy allows Limit requests in any trailing Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Valid reports whether the policy can be enforced.
func (p Policy) Valid() bool {
	return p.Limit > 0 && p.Window > 0
}

// Decision is the outcome of one check. RetryAfter is only set when the
// request was rejected and is always in (0, Window].
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds for the Retry-After header.
func (d Decision) RetryAfterSeconds() int {
	return int(math.Ceil(d.RetryAfter.Seconds()))
}

// Limiter decides whether the request identified by key fits the policy.
// Implementations never fail the request: backend trouble degrades to a
// local decision.
type Limiter interface {
	Check(ctx context.Context, key string, policy Policy) Decision
}

// Key builds the composite bucket key {route}::{subkey}::{clientID}.
func Key(route, subKey, clientID string) string {
	if subKey == "" {
		subKey = DefaultSubKey
	}
	return route + "::" + subKey + "::" + clientID
}

// invalidPolicyRetry is the wait reported for a policy that cannot be enforced.
const invalidPolicyRetry = time.Minute

// rejectInvalid denies every request under a policy without a positive limit
// and window. Nothing is recorded for such a policy.
func rejectInvalid(policy Policy) Decision {
	retry := policy.Window
	if retry <= 0 {
		retry = invalidPolicyRetry
	}
	return Decision{Allowed: false, RetryAfter: retry}
}

// clampRetry keeps a computed wait inside (0, window].
func clampRetry(retry, window time.Duration) time.Duration {
	if retry <= 0 {
		return time.Millisecond
	}
	if retry > window {
		return window
	}
	return retry
}
