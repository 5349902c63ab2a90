package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// RunMode controls how often a command may fire within a session.
// It is persisted by name so reordering the constants never corrupts saved settings.
type RunMode string

const (
	// RunEveryLogin fires the command on every login.
	RunEveryLogin RunMode = "EveryLogin"
	// RunOncePerSession fires the command at most once until the next logout.
	RunOncePerSession RunMode = "OncePerSession"
)

// Valid reports whether m is a known run mode.
func (m RunMode) Valid() bool {
	return m == RunEveryLogin || m == RunOncePerSession
}

// ParseRunMode resolves a persisted run-mode name. Empty defaults to EveryLogin.
func ParseRunMode(s string) (RunMode, error) {
	if s == "" {
		return RunEveryLogin, nil
	}
	m := RunMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunMode, s)
	}
	return m, nil
}

// CommandEntry is one configured command, either global or profile-scoped.
// The scheduler treats it as read-only; only the configuration owner edits it.
type CommandEntry struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID survives across logins and keys the once-per-session tracking.
	ID uuid.UUID `json:"id" yaml:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Name is a human label shown in plans and exports.
	Name string `json:"name" yaml:"name"`

	// CommandText is handed verbatim to the sink. Blank text is skipped at plan time.
	CommandText string `json:"command_text" yaml:"command_text"`

	// ─────────────────────────────
	// Scheduling policy
	// ─────────────────────────────

	// DelayMs is the wait after the previously accepted command. Negative values act as 0.
	DelayMs int `json:"delay_ms" yaml:"delay_ms"`

	RunMode RunMode `json:"run_mode" yaml:"run_mode"`

	Enabled bool `json:"enabled" yaml:"enabled"`
}

// NewCommandEntry returns an enabled EveryLogin command with a fresh ID.
func NewCommandEntry(name, text string, delayMs int) CommandEntry {
	return CommandEntry{
		ID:          uuid.New(),
		Name:        name,
		CommandText: text,
		DelayMs:     delayMs,
		RunMode:     RunEveryLogin,
		Enabled:     true,
	}
}

// EffectiveDelayMs floors the configured delay at zero.
func (c CommandEntry) EffectiveDelayMs() int {
	if c.DelayMs < 0 {
		return 0
	}
	return c.DelayMs
}
