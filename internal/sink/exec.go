package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

// Exec runs each command through a shell, `<shell> -c <text>`.
type Exec struct {
	shell   string
	timeout time.Duration
	logger  logger.Logger
}

// NewExec returns a shell sink. An empty shell means "sh"; timeout <= 0 disables the limit.
func NewExec(shell string, timeout time.Duration, log logger.Logger) *Exec {
	if shell == "" {
		shell = "sh"
	}
	return &Exec{shell: shell, timeout: timeout, logger: log}
}

func (e *Exec) Describe() string { return "exec:" + e.shell }

func (e *Exec) ProcessCommand(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyCommand
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.shell, "-c", text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Grandchildren holding the pipes open must not outlive the timeout.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %v", e.timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.New(msg)
		}
		return fmt.Errorf("command failed: %w", err)
	}

	e.logger.Debug("command executed",
		logger.String("shell", e.shell),
		logger.Duration("elapsed", elapsed),
		logger.Int("stdout_bytes", stdout.Len()))
	return nil
}
