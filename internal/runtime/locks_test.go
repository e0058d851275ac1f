package runtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/swimlane/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked []string
	err      error
}

func (f *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.locked = append(f.locked, key)
	return func(context.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unlocked = append(f.unlocked, key)
		return nil
	}, nil
}

func TestBlockLocks_SerializesSameKey(t *testing.T) {
	locks := newBlockLocks()
	var inside, maxInside int32

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = locks.WithLock(context.Background(), "block-1", func(context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, locks.size(), "entries are collected once released")
}

func TestBlockLocks_IndependentKeys(t *testing.T) {
	locks := newBlockLocks()
	held := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = locks.WithLock(context.Background(), "a", func(context.Context) error {
			close(held)
			<-done
			return nil
		})
	}()
	<-held

	err := locks.WithLock(context.Background(), "b", func(context.Context) error { return nil })
	close(done)
	assert.NoError(t, err, "a lock on one block never blocks another")
}

func TestBlockLocks_DistributedLocker(t *testing.T) {
	locks := newBlockLocks()
	fake := &fakeLocker{}
	locks.locker = fake

	err := locks.WithLock(context.Background(), "block-7", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"block-7"}, fake.locked)
	assert.Equal(t, []string{"block-7"}, fake.unlocked)

	fake.err = errors.New("redis down")
	called := false
	err = locks.WithLock(context.Background(), "block-7", func(context.Context) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, 0, locks.size())
}
