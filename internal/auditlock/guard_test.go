package auditlock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardMutualExclusion(t *testing.T) {
	g := New()

	assert.True(t, g.Acquire("L1"))
	assert.False(t, g.Acquire("L1"))
	assert.True(t, g.IsLocked("L1"))
	assert.Equal(t, 1, g.Count())

	g.Release("L1")

	assert.False(t, g.IsLocked("L1"))
	assert.True(t, g.Acquire("L1"))
}

func TestGuardKeysAreIndependent(t *testing.T) {
	g := New()

	assert.True(t, g.Acquire("L1"))
	assert.True(t, g.Acquire("L2"))
	assert.Equal(t, 2, g.Count())
}

func TestGuardReleaseIsIdempotent(t *testing.T) {
	g := New()

	g.Release("missing")
	assert.True(t, g.Acquire("L1"))

	g.Release("L1")
	g.Release("L1")

	assert.Equal(t, 0, g.Count())
}

func TestGuardNoImplicitExpiry(t *testing.T) {
	g := New()
	clock := time.Now()
	g.now = func() time.Time { return clock }

	require.True(t, g.Acquire("L1"))

	clock = clock.Add(24 * time.Hour)

	assert.False(t, g.Acquire("L1"))
}

func TestGuardTTL(t *testing.T) {
	g := New(WithTTL(time.Minute))
	clock := time.Now()
	g.now = func() time.Time { return clock }

	require.True(t, g.Acquire("L1"))
	assert.False(t, g.Acquire("L1"))

	clock = clock.Add(time.Minute)

	assert.False(t, g.IsLocked("L1"))
	assert.Equal(t, 0, g.Count())
	assert.True(t, g.Acquire("L1"))
}

func TestGuardDoReleasesOnError(t *testing.T) {
	g := New()
	boom := errors.New("fetch failed")

	err := g.Do(context.Background(), "L1", func(context.Context) error {
		assert.True(t, g.IsLocked("L1"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, g.IsLocked("L1"))
}

func TestGuardDoReleasesOnPanic(t *testing.T) {
	g := New()

	assert.Panics(t, func() {
		_ = g.Do(context.Background(), "L1", func(context.Context) error {
			panic("scorer exploded")
		})
	})

	assert.False(t, g.IsLocked("L1"))
}

func TestGuardDoContended(t *testing.T) {
	g := New()
	require.True(t, g.Acquire("L1"))

	called := false
	err := g.Do(context.Background(), "L1", func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLocked)
	assert.False(t, called)
	assert.True(t, g.IsLocked("L1"), "a failed attempt must not change the lock")
}

func TestGuardConcurrentAcquire(t *testing.T) {
	g := New()

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if g.Acquire("L1") {
				winners.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}
