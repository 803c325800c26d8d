package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
)

// LockCounter is satisfied by *auditlock.Guard
type LockCounter interface {
	Count() int
}

// LockMonitor publishes the number of running audits as a gauge and warns
// when it stays above a threshold.
type LockMonitor struct {
	locks        LockCounter
	tickInterval time.Duration
	warnAbove    int
	report       func(n int)
}

func NewLockMonitor(locks LockCounter, tickInterval time.Duration, warnAbove int) *LockMonitor {
	if tickInterval <= 0 {
		tickInterval = 15 * time.Second
	}

	return &LockMonitor{
		locks:        locks,
		tickInterval: tickInterval,
		warnAbove:    warnAbove,
		report:       middleware.SetAuditsInFlight,
	}
}

// Start samples until ctx is cancelled
func (m *LockMonitor) Start(ctx context.Context) {
	log.Info().Dur("interval", m.tickInterval).Msg("audit lock monitor started")

	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	m.sample()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("audit lock monitor stopped")
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

func (m *LockMonitor) sample() {
	n := m.locks.Count()
	m.report(n)

	if m.warnAbove > 0 && n > m.warnAbove {
		log.Warn().Int("in_flight", n).Msg("many audits holding the lock")
	}
}
