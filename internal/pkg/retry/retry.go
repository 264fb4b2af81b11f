package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultMaxDelay = 2 * time.Second
	defaultDelay    = 200 * time.Millisecond
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS"`
	Delay    time.Duration `env:"DELAY"`
	MaxDelay time.Duration `env:"MAX_DELAY"`
}

func (rc *RetryConfig) ToRetryOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(rc.Attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
	}
}

// Do runs fn under the policy, giving up early when ctx is done.
func (rc *RetryConfig) Do(ctx context.Context, fn func() error) error {
	return retry.Do(fn, rc.ToRetryOptions(ctx)...)
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

// DoIf is Do that stops at the first error for which retryable returns false.
func (rc *RetryConfig) DoIf(ctx context.Context, fn func() error, retryable func(error) bool) error {
	opts := append(rc.ToRetryOptions(ctx), retry.RetryIf(retryable))
	return retry.Do(fn, opts...)
}
