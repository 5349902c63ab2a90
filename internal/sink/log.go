package sink

import (
	"context"

	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

// Log is a dry-run sink: it records the command and always succeeds.
type Log struct {
	logger logger.Logger
}

func NewLog(log logger.Logger) *Log {
	return &Log{logger: log}
}

func (l *Log) Describe() string { return "log" }

func (l *Log) ProcessCommand(_ context.Context, text string) error {
	l.logger.Info("command", logger.String("text", text))
	return nil
}
