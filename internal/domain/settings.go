package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidRunMode = errors.New("invalid run mode")
	ErrInvalidStatus  = errors.New("invalid status")
)

// Settings is the document persisted by the configuration store.
type Settings struct {
	Profiles       []Profile      `json:"profiles" yaml:"profiles"`
	GlobalCommands []CommandEntry `json:"global_commands" yaml:"global_commands"`
	Logs           []LogEntry     `json:"logs,omitempty" yaml:"logs,omitempty"`
}

// Export is the shareable subset of Settings (no audit history).
type Export struct {
	Profiles       []Profile      `json:"profiles" yaml:"profiles"`
	GlobalCommands []CommandEntry `json:"global_commands" yaml:"global_commands"`
}

// Export returns the profiles and global commands of s.
func (s *Settings) Export() Export {
	return Export{
		Profiles:       s.Profiles,
		GlobalCommands: s.GlobalCommands,
	}
}

// Normalize fills defaults (missing ids, empty run modes, nil slices) and rejects
// unknown enum names. It mutates s in place.
func (s *Settings) Normalize() error {
	if s.Profiles == nil {
		s.Profiles = []Profile{}
	}
	if s.GlobalCommands == nil {
		s.GlobalCommands = []CommandEntry{}
	}

	if err := normalizeCommands(s.GlobalCommands); err != nil {
		return fmt.Errorf("global commands: %w", err)
	}

	for i := range s.Profiles {
		p := &s.Profiles[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.Commands == nil {
			p.Commands = []CommandEntry{}
		}
		if err := normalizeCommands(p.Commands); err != nil {
			return fmt.Errorf("profile %q: %w", p.Label, err)
		}
	}

	for i := range s.Logs {
		if !s.Logs[i].Status.Valid() {
			return fmt.Errorf("log %d: %w: %q", i, ErrInvalidStatus, s.Logs[i].Status)
		}
	}

	return nil
}

func normalizeCommands(cmds []CommandEntry) error {
	for i := range cmds {
		c := &cmds[i]
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		mode, err := ParseRunMode(string(c.RunMode))
		if err != nil {
			return fmt.Errorf("command %q: %w", c.Name, err)
		}
		c.RunMode = mode
	}
	return nil
}

// CloneCommands returns a deep copy of cmds.
func CloneCommands(cmds []CommandEntry) []CommandEntry {
	if cmds == nil {
		return nil
	}
	out := make([]CommandEntry, len(cmds))
	copy(out, cmds)
	return out
}

// CloneProfiles returns a deep copy of profiles, including their command lists.
func CloneProfiles(profiles []Profile) []Profile {
	if profiles == nil {
		return nil
	}
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		p.Commands = CloneCommands(p.Commands)
		out[i] = p
	}
	return out
}
