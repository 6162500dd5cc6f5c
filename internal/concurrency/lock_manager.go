package concurrency

import (
	"context"
	"sync"
)

// LockManager hands out one lock per key.
// Locks are reference counted and dropped once nobody holds or waits on them,
// so the map does not grow with the number of distinct keys ever seen.
type LockManager[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*refLock
}

// refLock is a one-slot semaphore so waiters can give up on ctx.
type refLock struct {
	sem  chan struct{}
	refs int
}

// NewLockManager creates a new LockManager
func NewLockManager[K comparable]() *LockManager[K] {
	return &LockManager[K]{locks: make(map[K]*refLock)}
}

// Lock blocks until key is held and returns the function that releases it.
func (lm *LockManager[K]) Lock(key K) (unlock func()) {
	unlock, _ = lm.LockContext(context.Background(), key)
	return unlock
}

// LockContext is Lock that gives up with ctx.Err() when ctx ends first.
func (lm *LockManager[K]) LockContext(ctx context.Context, key K) (unlock func(), err error) {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &refLock{sem: make(chan struct{}, 1)}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		lm.drop(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.sem
			lm.drop(key, l)
		})
	}, nil
}

func (lm *LockManager[K]) drop(key K, l *refLock) {
	lm.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
	lm.mu.Unlock()
}

// Len returns the number of keys currently held or waited on
func (lm *LockManager[K]) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
