package schedule

import (
	"context"
	"time"

	"go-micro.dev/v4/logger"
)

// GetRetryWrapper reschedules the task with backoff until fn succeeds
func GetRetryWrapper(l logger.Logger, fn func(logger.Logger, context.Context) error) ExecuteFn {
	return func(ctx context.Context) Result {
		if err := fn(l, ctx); err != nil {
			l.Logf(logger.ErrorLevel, "Operation failed: %s", err)
			return Result{Result: OpResultRetry}
		}
		l.Log(logger.InfoLevel, "Complete")
		return Result{Result: OpResultDone}
	}
}

// GetPeriodicWrapper reschedules the task every interval regardless of the
// outcome; failures are logged and the next run still happens on time
func GetPeriodicWrapper(l logger.Logger, interval time.Duration, fn func(logger.Logger, context.Context) error) ExecuteFn {
	return func(ctx context.Context) Result {
		if err := fn(l, ctx); err != nil {
			l.Logf(logger.ErrorLevel, "Operation failed: %s", err)
		}
		return Result{Result: OpResultRetryAfter, After: interval}
	}
}
