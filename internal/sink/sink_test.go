package sink

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

func TestExecSink(t *testing.T) {
	log := logger.New("error", false)

	tests := []struct {
		name    string
		timeout time.Duration
		text    string
		wantErr string
	}{
		{name: "success", timeout: time.Second, text: "true"},
		{name: "stderr becomes message", timeout: time.Second, text: "echo 'unknown gearset' >&2; exit 3", wantErr: "unknown gearset"},
		{name: "exit without stderr", timeout: time.Second, text: "exit 2", wantErr: "command failed"},
		{name: "timeout", timeout: 50 * time.Millisecond, text: "sleep 5", wantErr: "timed out"},
		{name: "blank", timeout: time.Second, text: "   ", wantErr: ErrEmptyCommand.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewExec("sh", tt.timeout, log)
			err := s.ProcessCommand(context.Background(), tt.text)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ProcessCommand() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ProcessCommand() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFuncAndName(t *testing.T) {
	boom := errors.New("boom")
	var got string
	f := Func(func(_ context.Context, text string) error {
		got = text
		return boom
	})

	if err := f.ProcessCommand(context.Background(), "/wave"); !errors.Is(err, boom) {
		t.Errorf("ProcessCommand() = %v, want boom", err)
	}
	if got != "/wave" {
		t.Errorf("text = %q", got)
	}

	if Name(f) != "custom" {
		t.Errorf("Name(Func) = %q, want custom", Name(f))
	}
	if Name(NewLog(logger.Nop())) != "log" {
		t.Error("Name(Log) should be log")
	}
	if Name(NewExec("", 0, logger.Nop())) != "exec:sh" {
		t.Error("NewExec should default to sh")
	}
}

func TestLogSinkSucceeds(t *testing.T) {
	if err := NewLog(logger.Nop()).ProcessCommand(context.Background(), "/echo hi"); err != nil {
		t.Errorf("ProcessCommand() = %v", err)
	}
}

func TestPublisherRequiresSubscriber(t *testing.T) {
	addr := os.Getenv("LOGINCMD_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LOGINCMD_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	p := NewPublisher(client, "logincmd:test:nobody", true)
	if err := p.ProcessCommand(ctx, "/echo hi"); !errors.Is(err, ErrNoSubscriber) {
		t.Errorf("ProcessCommand() = %v, want ErrNoSubscriber", err)
	}

	p = NewPublisher(client, "logincmd:test:nobody", false)
	if err := p.ProcessCommand(ctx, "/echo hi"); err != nil {
		t.Errorf("ProcessCommand() = %v, want nil", err)
	}
}
