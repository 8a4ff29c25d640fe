package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go-micro.dev/v4/logger"
)

func TestGetRetryWrapper(t *testing.T) {
	attempts := 0
	fn := GetRetryWrapper(logger.DefaultLogger, func(l logger.Logger, ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	assert.Equal(t, OpResultRetry, fn(context.Background()).Result)
	assert.Equal(t, OpResultRetry, fn(context.Background()).Result)
	assert.Equal(t, OpResultDone, fn(context.Background()).Result)
	assert.Equal(t, 3, attempts)
}

func TestGetPeriodicWrapper(t *testing.T) {
	const interval = 15 * time.Minute

	calls := 0
	fn := GetPeriodicWrapper(logger.DefaultLogger, interval, func(l logger.Logger, ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})

	// a failed run still reschedules at the same interval
	res := fn(context.Background())
	assert.Equal(t, OpResultRetryAfter, res.Result)
	assert.Equal(t, interval, res.After)

	res = fn(context.Background())
	assert.Equal(t, OpResultRetryAfter, res.Result)
	assert.Equal(t, interval, res.After)
	assert.Equal(t, 2, calls)
}
