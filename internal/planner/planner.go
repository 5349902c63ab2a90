// Package planner turns a character identity and the configured commands into an
// ordered execution plan with per-entry dispatch times.
package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

// SessionSet answers whether a once-per-session command already fired.
type SessionSet interface {
	Has(id uuid.UUID) bool
}

// Input holds everything Build needs. Build does not mutate any of it.
type Input struct {
	Now            time.Time
	Character      domain.CharacterInfo
	GlobalCommands []domain.CommandEntry
	Profiles       []domain.Profile
	Executed       SessionSet // nil means nothing fired yet
}

// Plan is the result of one build.
type Plan struct {
	CharacterKey string
	Profile      *domain.Profile          // matched profile, nil when none
	Entries      []*domain.ExecutionEntry // every command, in sequence order
	Pending      []*domain.ExecutionEntry // accepted entries, ascending ScheduledAt
}

// Skipped returns the entries classified as skipped at build time, in sequence order.
func (p *Plan) Skipped() []*domain.ExecutionEntry {
	var out []*domain.ExecutionEntry
	for _, e := range p.Entries {
		if e.Status == domain.StatusSkipped {
			out = append(out, e)
		}
	}
	return out
}

// Build produces the plan for one login.
//
// Global commands come first, then the commands of the first enabled profile matching
// the character. The dispatch cursor starts at Now and only advances for entries that
// are accepted into the pending queue.
func Build(in Input) *Plan {
	key := in.Character.Key()
	profile := domain.FindProfile(in.Profiles, in.Character)

	commands := make([]domain.CommandEntry, 0, len(in.GlobalCommands))
	commands = append(commands, in.GlobalCommands...)
	if profile != nil && profile.Enabled {
		commands = append(commands, profile.Commands...)
	}

	plan := &Plan{
		CharacterKey: key,
		Profile:      profile,
		Entries:      make([]*domain.ExecutionEntry, 0, len(commands)),
	}

	cursor := in.Now.UTC()
	for seq, cmd := range commands {
		entry := &domain.ExecutionEntry{
			Sequence:     seq,
			CharacterKey: key,
			Command:      cmd,
			ScheduledAt:  cursor,
		}

		if reason, skip := classify(cmd, in.Executed); skip {
			entry.Status = domain.StatusSkipped
			entry.Message = reason
			plan.Entries = append(plan.Entries, entry)
			continue
		}

		cursor = cursor.Add(time.Duration(cmd.EffectiveDelayMs()) * time.Millisecond)
		entry.ScheduledAt = cursor
		entry.Status = domain.StatusPending
		plan.Entries = append(plan.Entries, entry)
		plan.Pending = append(plan.Pending, entry)
	}

	return plan
}

// classify applies the skip rules in order; the first match wins.
func classify(cmd domain.CommandEntry, executed SessionSet) (string, bool) {
	switch {
	case !cmd.Enabled:
		return domain.MsgDisabled, true
	case strings.TrimSpace(cmd.CommandText) == "":
		return domain.MsgEmptyCommand, true
	case cmd.RunMode == domain.RunOncePerSession && executed != nil && executed.Has(cmd.ID):
		return domain.MsgAlreadySent, true
	}
	return "", false
}
