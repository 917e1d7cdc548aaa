// Package netmon provides the connectivity signal that gates and triggers
// outbox flushes: a background prober that tracks whether the API endpoint
// is reachable and publishes online/offline transitions.
package netmon

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayutaki/kiroku/internal/logger"
)

// Probe reports whether the server is reachable right now.
type Probe func(ctx context.Context) bool

// Monitor runs a Probe on a fixed interval and exposes the latest result.
// Transitions (offline→online and back) are delivered on Events; the
// channel carries the new online state. Events are dropped, not queued,
// when the consumer lags — only the latest transition matters.
type Monitor struct {
	probe    Probe
	interval time.Duration
	log      *logger.Logger

	online atomic.Bool
	events chan bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Monitor that is assumed online until the first probe says
// otherwise. The monitor is idle until Start is called.
func New(probe Probe, interval time.Duration, log *logger.Logger) *Monitor {
	m := &Monitor{
		probe:    probe,
		interval: interval,
		log:      log,
		events:   make(chan bool, 1),
	}
	m.online.Store(true)
	return m
}

// Online returns the last observed connectivity state.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Events returns the transition channel. Each value is the new state.
func (m *Monitor) Events() <-chan bool {
	return m.events
}

// Start launches the probing goroutine. It stops any previously running
// prober first. The goroutine exits when ctx is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context) {
	if m.interval <= 0 {
		m.interval = 15 * time.Second
	}

	m.Stop()

	m.mu.Lock()
	probeCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		t := time.NewTicker(m.interval)
		defer t.Stop()

		m.observe(probeCtx)
		for {
			select {
			case <-probeCtx.Done():
				return
			case <-t.C:
				m.observe(probeCtx)
			}
		}
	}()
}

// Stop cancels the probing goroutine and blocks until it has exited. Safe
// to call when the monitor is not running.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *Monitor) observe(ctx context.Context) {
	current := m.probe(ctx)
	previous := m.online.Swap(current)
	if previous == current {
		return
	}

	m.log.Info().Bool("online", current).Msg("connectivity changed")
	select {
	case m.events <- current:
	default:
	}
}
