package session

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

// Tick dispatches the head of the queue once its scheduled time has passed.
// At most one entry is dispatched per call; overdue entries drain on later ticks.
func (m *Manager) Tick(ctx context.Context, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	head := m.pending.peek()
	if head == nil || now.Before(head.ScheduledAt) {
		return
	}
	m.pending.pop()
	m.execute(ctx, head)
}

// RunNow executes a pending entry immediately, wherever it sits in the queue.
func (m *Manager) RunNow(ctx context.Context, seq int) (domain.ExecutionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.pendingEntry(seq)
	if err != nil {
		return domain.ExecutionEntry{}, err
	}
	m.pending.remove(seq)
	e.ScheduledAt = m.now()
	m.execute(ctx, e)
	return *e, nil
}

// Skip marks a pending entry Skipped with reason (default "Skipped by user").
func (m *Manager) Skip(ctx context.Context, seq int, reason string) (domain.ExecutionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.pendingEntry(seq)
	if err != nil {
		return domain.ExecutionEntry{}, err
	}
	m.pending.remove(seq)
	m.skip(ctx, e, reason)
	return *e, nil
}

// RunNext executes the head of the queue regardless of its scheduled time.
func (m *Manager) RunNext(ctx context.Context) (domain.ExecutionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.pending.pop()
	if e == nil {
		return domain.ExecutionEntry{}, ErrQueueEmpty
	}
	e.ScheduledAt = m.now()
	m.execute(ctx, e)
	return *e, nil
}

// SkipNext skips the head of the queue.
func (m *Manager) SkipNext(ctx context.Context, reason string) (domain.ExecutionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.pending.pop()
	if e == nil {
		return domain.ExecutionEntry{}, ErrQueueEmpty
	}
	m.skip(ctx, e, reason)
	return *e, nil
}

// ClearPending skips every pending entry with "Cleared" and returns how many there were.
// Entries that already left the queue are untouched.
func (m *Manager) ClearPending(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	drained := m.pending.drain()
	if len(drained) == 0 {
		return 0
	}

	now := m.now()
	for _, e := range drained {
		e.Status = domain.StatusSkipped
		e.Message = domain.MsgCleared
		m.record(e, now)
	}
	m.persist(ctx)

	m.logger.Info("pending queue cleared", logger.Int("count", len(drained)))
	return len(drained)
}

// pendingEntry resolves seq against the current plan. Sequence equals plan position.
func (m *Manager) pendingEntry(seq int) (*domain.ExecutionEntry, error) {
	if m.plan == nil || seq < 0 || seq >= len(m.plan.Entries) {
		return nil, fmt.Errorf("%w: %d", ErrEntryNotFound, seq)
	}
	e := m.plan.Entries[seq]
	if e.Status.Terminal() {
		return nil, fmt.Errorf("%w: %d is %s", ErrNotPending, seq, e.Status)
	}
	return e, nil
}

func (m *Manager) skip(ctx context.Context, e *domain.ExecutionEntry, reason string) {
	if reason == "" {
		reason = domain.MsgSkippedByUser
	}
	e.Status = domain.StatusSkipped
	e.Message = reason
	m.record(e, m.now())
	m.persist(ctx)
}
