package lock

import (
	"context"
	"sync"
	"time"

	"github.com/Fesaa/mnema/internal/model"
)

type Locker interface {
	Lock(key model.ContentKey) Unlocker
	ContextLock(ctx context.Context, key model.ContentKey) (Unlocker, error)
}

type Unlocker interface {
	Unlock()
}

type lock struct {
	mu     sync.Mutex
	ref    uint64
	locker *locker
	key    model.ContentKey
}

// Unlock implements Unlocker.
func (lck *lock) Unlock() {
	lck.locker.release(lck)
	lck.mu.Unlock()
}

type locker struct {
	mu sync.Mutex
	l  map[model.ContentKey]*lock
}

func (l *locker) getOrCreate(key model.ContentKey) *lock {
	l.mu.Lock()
	defer l.mu.Unlock()

	result, ok := l.l[key]
	if !ok {
		result = &lock{locker: l, key: key}
		l.l[key] = result
	}
	result.ref++
	return result
}

// ContextLock implements Locker.
func (l *locker) ContextLock(ctx context.Context, key model.ContentKey) (Unlocker, error) {
	itemLock := l.getOrCreate(key)
	if itemLock.mu.TryLock() {
		return itemLock, nil
	}

	for {
		select {
		case <-ctx.Done():
			l.release(itemLock)
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
			if itemLock.mu.TryLock() {
				return itemLock, nil
			}
		}
	}
}

// Lock implements Locker.
func (l *locker) Lock(key model.ContentKey) Unlocker {
	itemLock := l.getOrCreate(key)
	itemLock.mu.Lock()
	return itemLock
}

func (l *locker) release(lck *lock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lck.ref--
	if lck.ref == 0 {
		delete(l.l, lck.key)
	}
}

func NewLocker() Locker {
	return &locker{
		l: map[model.ContentKey]*lock{},
	}
}
