// Package scheduler runs periodic maintenance of the snapshot store.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Purger deletes expired snapshots and returns how many were removed
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// PurgeTriggerConfig holds configuration for the purge trigger
type PurgeTriggerConfig struct {
	// Interval is how often expired snapshots are purged
	Interval time.Duration
	// Timeout bounds a single purge
	Timeout time.Duration
}

// DefaultPurgeTriggerConfig returns default purge trigger configuration
func DefaultPurgeTriggerConfig() PurgeTriggerConfig {
	return PurgeTriggerConfig{
		Interval: 10 * time.Minute,
		Timeout:  time.Minute,
	}
}

// PurgeTrigger purges expired snapshots on a fixed interval. Stores that
// expire entries themselves (Redis, in-memory) do not need one.
type PurgeTrigger struct {
	config PurgeTriggerConfig
	purger Purger
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	runs      int
}

// NewPurgeTrigger creates a new purge trigger
func NewPurgeTrigger(config PurgeTriggerConfig, purger Purger, logger *zap.Logger) *PurgeTrigger {
	defaults := DefaultPurgeTriggerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	return &PurgeTrigger{
		config: config,
		purger: purger,
		logger: logger,
	}
}

// Start starts the purge loop
func (p *PurgeTrigger) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.runLoop(ctx)

	p.logger.Info("Snapshot purge trigger started", zap.Duration("interval", p.config.Interval))
	return nil
}

// Stop stops the purge loop, waiting for a running purge until ctx is done
func (p *PurgeTrigger) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Snapshot purge trigger stopped")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Snapshot purge trigger stop timed out")
		return ctx.Err()
	}
}

// Runs returns how many purges have completed, successfully or not
func (p *PurgeTrigger) Runs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runs
}

func (p *PurgeTrigger) runLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

// purge runs one purge. Failures are logged and retried on the next tick.
func (p *PurgeTrigger) purge(ctx context.Context) {
	purgeCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	n, err := p.purger.PurgeExpired(purgeCtx)

	p.mu.Lock()
	p.runs++
	p.mu.Unlock()

	if err != nil {
		p.logger.Error("Failed to purge expired snapshots", zap.Error(err))
		return
	}
	if n > 0 {
		p.logger.Info("Purged expired snapshots", zap.Int64("count", n))
	}
}
