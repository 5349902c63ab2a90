package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

type countingTicker struct {
	ticks atomic.Int32
}

func (c *countingTicker) Tick(context.Context, time.Time) { c.ticks.Add(1) }

func TestDispatcherTicksUntilStopped(t *testing.T) {
	target := &countingTicker{}
	d := NewDispatcher(target, logger.New("error", false), 5*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for target.ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d ticks after 2s", target.ticks.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	d.Stop()
	d.Stop() // idempotent
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after Stop()")
	}
}

func TestDispatcherStopsOnContext(t *testing.T) {
	d := NewDispatcher(&countingTicker{}, logger.New("error", false), 0)
	if d.interval != DefaultTickInterval {
		t.Errorf("interval = %v, want default", d.interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
