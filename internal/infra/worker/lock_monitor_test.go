package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/leadpilot/internal/auditlock"
)

type recorder struct {
	mu   sync.Mutex
	seen []int
}

func (r *recorder) add(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *recorder) last() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		return 0, false
	}
	return r.seen[len(r.seen)-1], true
}

func TestLockMonitorSamplesOnStart(t *testing.T) {
	guard := auditlock.New()
	guard.Acquire("L1")
	guard.Acquire("L2")

	rec := &recorder{}
	m := NewLockMonitor(guard, time.Hour, 0)
	m.report = rec.add

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		n, ok := rec.last()
		return ok && n == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestLockMonitorFollowsReleases(t *testing.T) {
	guard := auditlock.New()
	guard.Acquire("L1")

	rec := &recorder{}
	m := NewLockMonitor(guard, 5*time.Millisecond, 0)
	m.report = rec.add

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	assert.Eventually(t, func() bool {
		n, ok := rec.last()
		return ok && n == 1
	}, time.Second, time.Millisecond)

	guard.Release("L1")

	assert.Eventually(t, func() bool {
		n, _ := rec.last()
		return n == 0
	}, time.Second, time.Millisecond)
}

func TestNewLockMonitorDefaultsInterval(t *testing.T) {
	m := NewLockMonitor(auditlock.New(), 0, 0)

	assert.Equal(t, 15*time.Second, m.tickInterval)
}
