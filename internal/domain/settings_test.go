package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSettingsNormalize(t *testing.T) {
	s := Settings{
		GlobalCommands: []CommandEntry{
			{Name: "greet", CommandText: "/wave"},
		},
		Profiles: []Profile{
			{Label: "main", Commands: []CommandEntry{{Name: "gear", CommandText: "/gs change 1", RunMode: RunOncePerSession}}},
		},
	}

	if err := s.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if s.GlobalCommands[0].ID == uuid.Nil {
		t.Error("Normalize() should assign an id to global commands")
	}
	if s.GlobalCommands[0].RunMode != RunEveryLogin {
		t.Errorf("Normalize() run mode = %q, want %q", s.GlobalCommands[0].RunMode, RunEveryLogin)
	}
	if s.Profiles[0].ID == uuid.Nil {
		t.Error("Normalize() should assign an id to profiles")
	}
	if s.Profiles[0].Commands[0].RunMode != RunOncePerSession {
		t.Errorf("Normalize() should keep explicit run mode, got %q", s.Profiles[0].Commands[0].RunMode)
	}
}

func TestSettingsNormalizeRejectsUnknownEnums(t *testing.T) {
	s := Settings{GlobalCommands: []CommandEntry{{Name: "x", RunMode: "Sometimes"}}}
	if err := s.Normalize(); !errors.Is(err, ErrInvalidRunMode) {
		t.Errorf("Normalize() error = %v, want ErrInvalidRunMode", err)
	}

	s = Settings{Logs: []LogEntry{{Status: "Exploded"}}}
	if err := s.Normalize(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Normalize() error = %v, want ErrInvalidStatus", err)
	}
}

func TestEnumsPersistByName(t *testing.T) {
	entry := LogEntry{Status: StatusSkipped, Message: MsgCleared}
	cmd := CommandEntry{ID: uuid.New(), RunMode: RunOncePerSession}

	data, err := json.Marshal(struct {
		Log LogEntry     `json:"log"`
		Cmd CommandEntry `json:"cmd"`
	}{entry, cmd})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"status":"Skipped"`) {
		t.Errorf("status should be persisted by name, got %s", out)
	}
	if !strings.Contains(out, `"run_mode":"OncePerSession"`) {
		t.Errorf("run mode should be persisted by name, got %s", out)
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("Pending must not be terminal")
	}
	for _, s := range []Status{StatusSent, StatusSkipped, StatusError} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestEffectiveDelayMs(t *testing.T) {
	if got := (CommandEntry{DelayMs: -50}).EffectiveDelayMs(); got != 0 {
		t.Errorf("EffectiveDelayMs() = %d, want 0", got)
	}
	if got := (CommandEntry{DelayMs: 250}).EffectiveDelayMs(); got != 250 {
		t.Errorf("EffectiveDelayMs() = %d, want 250", got)
	}
}
