package lock

import (
	"context"
	"time"

	"github.com/Fesaa/mnema/internal/model"
)

func TimedLock(ctx context.Context, lock Locker, key model.ContentKey, timeout time.Duration) (Unlocker, error) {
	tCtx, tCancel := context.WithTimeout(ctx, timeout)
	defer tCancel()

	return lock.ContextLock(tCtx, key)
}
