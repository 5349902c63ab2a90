// Package sink delivers resolved command text to whatever executes it.
package sink

import (
	"context"
	"errors"
)

var (
	ErrNoSubscriber = errors.New("no subscriber received the command")
	ErrEmptyCommand = errors.New("empty command")
)

// Sink executes one command. A non-nil error means the command failed;
// its message is recorded verbatim on the execution entry.
type Sink interface {
	ProcessCommand(ctx context.Context, text string) error
}

// Func adapts a plain function to a Sink.
type Func func(ctx context.Context, text string) error

func (f Func) ProcessCommand(ctx context.Context, text string) error { return f(ctx, text) }

// Describer is implemented by sinks that can name themselves for /infra.
type Describer interface {
	Describe() string
}

// Name returns s's description, or "custom" when it has none.
func Name(s Sink) string {
	if d, ok := s.(Describer); ok {
		return d.Describe()
	}
	return "custom"
}
