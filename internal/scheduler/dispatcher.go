package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

// DefaultTickInterval is the dispatch cadence when none is configured.
const DefaultTickInterval = 100 * time.Millisecond

// Ticker is driven by the Dispatcher, typically *session.Manager.
type Ticker interface {
	Tick(ctx context.Context, now time.Time)
}

// Dispatcher is the clock that drains the pending queue. Scheduling granularity
// is bounded by its interval.
type Dispatcher struct {
	target   Ticker
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(target Ticker, log logger.Logger, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Dispatcher{
		target:   target,
		logger:   log,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		stopCh:   make(chan struct{}),
	}
}

// Run ticks until ctx is done or Stop is called.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("dispatcher started", logger.Duration("interval", d.interval))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.target.Tick(ctx, d.now())
		case <-d.stopCh:
			d.logger.Info("dispatcher stopped")
			return nil
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped")
			return nil
		}
	}
}

// Start runs the dispatcher in its own goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() { _ = d.Run(ctx) }()
}

// Stop stops the dispatcher
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}
