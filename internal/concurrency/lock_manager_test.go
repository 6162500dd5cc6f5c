package concurrency

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SerializesSameKey(t *testing.T) {
	lm := NewLockManager[int64]()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock(1)
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, lm.Len(), "locks should be released after use")
}

func TestLockManager_DifferentKeysDoNotBlock(t *testing.T) {
	lm := NewLockManager[int64]()
	unlockA := lm.Lock(1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := lm.Lock(2)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key should not block")
	}
}

func TestLockManager_UnlockIsIdempotent(t *testing.T) {
	lm := NewLockManager[string]()
	unlock := lm.Lock("a")
	unlock()
	unlock()
	assert.Equal(t, 0, lm.Len())
}

func TestLockManager_LockContextGivesUp(t *testing.T) {
	lm := NewLockManager[int64]()
	unlock := lm.Lock(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	second, err := lm.LockContext(ctx, 1)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, second)
	assert.Equal(t, 1, lm.Len(), "abandoned waiter must not keep a reference")

	unlock()
	assert.Equal(t, 0, lm.Len())

	again, err := lm.LockContext(context.Background(), 1)
	assert.NoError(t, err)
	again()
}
