package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/catalog"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

const settingsYAML = `
global_commands:
  - id: 3f1c1d7e-8d4a-4c55-9a43-3b8f1f1f0a01
    name: wave
    command_text: /wave
    delay_ms: 0
    run_mode: EveryLogin
    enabled: true
profiles:
  - id: 3f1c1d7e-8d4a-4c55-9a43-3b8f1f1f0a02
    label: main
    character_name: Alys Rowe
    world_id: 73
    world_name: Adamantoise
    enabled: true
    commands:
      - id: 3f1c1d7e-8d4a-4c55-9a43-3b8f1f1f0a03
        name: gear
        command_text: /gearset change 3
        delay_ms: 500
        run_mode: OncePerSession
        enabled: true
`

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logincmd.yaml")
	cat := catalog.New()
	sr := NewSettingsReloader(path, cat, logger.New("error", false), 0, nil)
	ctx := context.Background()

	changed, err := sr.Reload(ctx)
	if err != nil || changed {
		t.Fatalf("Reload() on missing file = %v, %v", changed, err)
	}

	if err := os.WriteFile(path, []byte(settingsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	changed, err = sr.Reload(ctx)
	if err != nil || !changed {
		t.Fatalf("Reload() = %v, %v, want changed", changed, err)
	}
	if np, ng := cat.Counts(); np != 1 || ng != 1 {
		t.Errorf("Counts() = %d, %d, want 1, 1", np, ng)
	}

	changed, err = sr.Reload(ctx)
	if err != nil || changed {
		t.Errorf("second Reload() = %v, %v, want unchanged", changed, err)
	}

	if err := os.WriteFile(path, []byte("global_commands:\n  - name: x\n    run_mode: Sometimes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := sr.Reload(ctx); err == nil {
		t.Error("Reload() should reject unknown run mode")
	}
	if _, ng := cat.Counts(); ng != 1 {
		t.Error("rejected reload must keep the previous catalog")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logincmd.yaml")
	cat := catalog.New()
	sr := NewSettingsReloader(path, cat, logger.New("error", false), 20*time.Millisecond, make(chan struct{}))

	done := make(chan error, 1)
	go func() { done <- sr.Run(context.Background()) }()
	defer func() {
		sr.Stop()
		<-done
	}()

	deadline := time.After(5 * time.Second)
	for {
		// Rewrite until the watcher is registered and picks it up.
		if err := os.WriteFile(path, []byte(settingsYAML), 0o644); err != nil {
			t.Fatal(err)
		}
		if np, _ := cat.Counts(); np == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("catalog not reloaded after file write")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
