package domain

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of an execution entry, persisted by name.
type Status string

const (
	StatusPending Status = "Pending"
	StatusSent    Status = "Sent"
	StatusSkipped Status = "Skipped"
	StatusError   Status = "Error"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusSkipped, StatusError:
		return true
	}
	return false
}

// Terminal reports whether s can no longer change.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusSkipped || s == StatusError
}

// ParseStatus resolves a persisted status name.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Outcome messages recorded on entries and log records.
const (
	MsgDisabled      = "Disabled"
	MsgEmptyCommand  = "Empty command"
	MsgAlreadySent   = "Already sent this session"
	MsgSent          = "Sent"
	MsgCleared       = "Cleared"
	MsgSkippedByUser = "Skipped by user"
)

// ExecutionEntry is one command instance inside a built plan.
// Entries are created per login and never reused.
type ExecutionEntry struct {
	Sequence     int          `json:"sequence"`
	CharacterKey string       `json:"character_key"`
	Command      CommandEntry `json:"command"`
	ScheduledAt  time.Time    `json:"scheduled_at"`
	Status       Status       `json:"status"`
	Message      string       `json:"message"`
}

// LogEntry is an immutable audit record written when an entry turns terminal.
type LogEntry struct {
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	CharacterKey string    `json:"character_key" yaml:"character_key"`
	CommandText  string    `json:"command_text" yaml:"command_text"`
	Status       Status    `json:"status" yaml:"status"`
	Message      string    `json:"message" yaml:"message"`
}

// NewLogEntry captures the current state of e at time at (stored as UTC).
func NewLogEntry(e *ExecutionEntry, at time.Time) LogEntry {
	return LogEntry{
		Timestamp:    at.UTC(),
		CharacterKey: e.CharacterKey,
		CommandText:  e.Command.CommandText,
		Status:       e.Status,
		Message:      e.Message,
	}
}
