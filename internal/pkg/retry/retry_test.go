package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastConfig() *RetryConfig {
	return &RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestDo(t *testing.T) {
	calls := 0
	err := fastConfig().Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoIf(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	err := fastConfig().DoIf(context.Background(), func() error {
		calls++
		return permanent
	}, func(err error) bool { return !errors.Is(err, permanent) })

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := (&RetryConfig{Attempts: 5, Delay: time.Second, MaxDelay: time.Second}).Do(ctx, func() error {
		calls++
		return errors.New("down")
	})
	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}
