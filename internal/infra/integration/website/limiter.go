package website

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultHostIdle is how long a host bucket survives without traffic
const DefaultHostIdle = 10 * time.Minute

// HostLimiter rate-limits requests per hostname so bulk audits do not hammer one site
type HostLimiter struct {
	mu   sync.Mutex
	m    map[string]*hostBucket
	r    rate.Limit
	b    int
	idle time.Duration
	now  func() time.Time
}

type hostBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		m:    make(map[string]*hostBucket),
		r:    rate.Limit(reqPerSec),
		b:    burst,
		idle: DefaultHostIdle,
		now:  time.Now,
	}
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	hb, ok := hl.m[host]
	if !ok {
		hb = &hostBucket{lim: rate.NewLimiter(hl.r, hl.b)}
		hl.m[host] = hb
	}
	hb.lastSeen = hl.now()

	return hb.lim
}

// Cleanup forgets hosts idle for longer than the idle window, every interval
// until done is closed.
func (hl *HostLimiter) Cleanup(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			hl.sweep()
		}
	}
}

func (hl *HostLimiter) sweep() {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	now := hl.now()
	for host, hb := range hl.m {
		if now.Sub(hb.lastSeen) > hl.idle {
			delete(hl.m, host)
		}
	}
}

// WaitURL blocks until a request to raw's host is allowed or ctx is done
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	if hl == nil {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.limiterFor("_").Wait(ctx)
	}

	return hl.limiterFor(strings.ToLower(u.Hostname())).Wait(ctx)
}
