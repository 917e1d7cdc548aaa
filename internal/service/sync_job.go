package service

import (
	"context"
	"sync"
	"time"

	"github.com/ayutaki/kiroku/internal/logger"
)

// SyncJob drives the engine on a fixed interval and, between ticks, on
// connectivity transitions. Start is idempotent: calling it again restarts
// the loop with a fresh context.
type SyncJob struct {
	engine   *SyncEngine
	interval time.Duration
	events   <-chan bool
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job flushing every interval. events may be nil; when
// set, a transition to online triggers an immediate flush instead of
// waiting out the current tick.
func NewSyncJob(engine *SyncEngine, interval time.Duration, events <-chan bool, log *logger.Logger) *SyncJob {
	return &SyncJob{
		engine:   engine,
		interval: interval,
		events:   events,
		log:      log,
	}
}

// Start launches the background flush loop.
func (j *SyncJob) Start(ctx context.Context) {
	j.Stop()

	ctx, cancel := context.WithCancel(ctx)

	j.mu.Lock()
	j.cancel = cancel
	j.mu.Unlock()

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		events := j.events

		j.engine.Flush(ctx)

		for {
			select {
			case <-ctx.Done():
				j.log.Debug().Msg("sync job stopped")
				return
			case <-ticker.C:
				j.engine.Flush(ctx)
			case online, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				if online {
					j.log.Debug().Msg("back online, flushing")
					j.engine.Flush(ctx)
				}
			}
		}
	}()
}

// Stop terminates the loop and waits for it to exit.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
