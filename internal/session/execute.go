package session

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

// execute hands e to the sink exactly once. Failures become status Error with the
// sink's message and are never retried.
func (m *Manager) execute(ctx context.Context, e *domain.ExecutionEntry) {
	start := time.Now()
	err := m.callSink(ctx, e.Command.CommandText)
	elapsed := time.Since(start)

	if err != nil {
		e.Status = domain.StatusError
		e.Message = err.Error()
		m.logger.Warn("command failed",
			logger.Int("sequence", e.Sequence),
			logger.Stringer("command_id", e.Command.ID),
			logger.String("command", e.Command.Name),
			logger.Time("scheduled_at", e.ScheduledAt),
			logger.Error(err))
	} else {
		e.Status = domain.StatusSent
		e.Message = domain.MsgSent
		if e.Command.RunMode == domain.RunOncePerSession {
			m.executed.add(e.Command.ID)
		}
		m.logger.Debug("command sent",
			logger.Int("sequence", e.Sequence),
			logger.String("command", e.Command.Name),
			logger.Bool("once_per_session", e.Command.RunMode == domain.RunOncePerSession),
			logger.Duration("elapsed", elapsed))
	}

	m.metrics.SinkCall(e.Status, elapsed)
	m.record(e, m.now())
	m.persist(ctx)
}

// callSink turns a panicking sink into an ordinary failure for this entry.
func (m *Manager) callSink(ctx context.Context, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panic: %v", r)
		}
	}()
	return m.sink.ProcessCommand(ctx, text)
}

// record appends the terminal state of e to the audit log.
func (m *Manager) record(e *domain.ExecutionEntry, at time.Time) {
	if evicted := m.log.Append(domain.NewLogEntry(e, at)); evicted > 0 {
		m.logger.Debug("audit log evicted oldest entries", logger.Int("count", evicted))
	}
	m.metrics.Finished(e.Status)
}

// persist saves settings and logs. Failures are logged and counted, never returned.
func (m *Manager) persist(ctx context.Context) {
	m.metrics.SetPending(len(m.pending))
	m.metrics.SetLogSize(m.log.Len())

	if m.persister == nil {
		return
	}
	if err := m.persister.Save(ctx); err != nil {
		m.metrics.PersistFailed()
		m.logger.Warn("failed to persist settings", logger.Error(err))
	}
}
