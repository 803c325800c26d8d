// Package auditlock keeps at most one audit in flight per lead within a process.
package auditlock

import (
	"context"
	"sync"
	"time"
)

// Locker is the single-flight contract used by audit callers. Guard is the
// in-process implementation; a store-backed keyed mutex can replace it.
type Locker interface {
	Acquire(id string) bool
	Release(id string)
}

// Guard is a process-local lock table keyed by lead ID.
//
// Locks never expire unless WithTTL is given: a caller that acquires without
// releasing keeps the lead locked until the process restarts.
type Guard struct {
	mu     sync.Mutex
	active map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

// Option configures the Guard
type Option func(*Guard)

// WithTTL treats locks older than ttl as released. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(g *Guard) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// New creates an empty Guard
func New(opts ...Option) *Guard {
	g := &Guard{
		active: make(map[string]time.Time),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Acquire locks id and reports whether the caller now owns it. A false
// return means an audit for id is already running; nothing changes.
func (g *Guard) Acquire(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if since, ok := g.active[id]; ok && !g.expired(since) {
		return false
	}

	g.active[id] = g.now()

	return true
}

// Release unlocks id. Releasing an id that is not locked is a no-op.
func (g *Guard) Release(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.active, id)
}

// IsLocked reports whether an audit for id is in flight
func (g *Guard) IsLocked(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	since, ok := g.active[id]

	return ok && !g.expired(since)
}

// Count returns the number of leads currently locked
func (g *Guard) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0

	for _, since := range g.active {
		if !g.expired(since) {
			n++
		}
	}

	return n
}

// Do runs fn while holding the lock for id. It returns ErrLocked without
// calling fn when the lock is taken. The lock is released on every exit
// path of fn, panics included.
func (g *Guard) Do(ctx context.Context, id string, fn func(ctx context.Context) error) error {
	return Do(ctx, g, id, fn)
}

// Do is the scoped acquire/release pattern for any Locker
func Do(ctx context.Context, l Locker, id string, fn func(ctx context.Context) error) error {
	if !l.Acquire(id) {
		return ErrLocked
	}

	defer l.Release(id)

	return fn(ctx)
}

func (g *Guard) expired(since time.Time) bool {
	return g.ttl > 0 && g.now().Sub(since) >= g.ttl
}
