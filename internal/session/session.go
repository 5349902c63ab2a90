// Package session owns the login/logout state machine, the pending dispatch queue
// and the once-per-session bookkeeping.
//
// All state sits behind one mutex. Sink calls happen while it is held, so a plan
// rebuild, a tick and a manual control never interleave and at most one command
// is in flight at any time. A slow sink therefore stalls the following ticks.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/auditlog"
	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
	"github.com/MrSnakeDoc/logincmd/internal/planner"
	"github.com/MrSnakeDoc/logincmd/internal/sink"
)

var (
	ErrIdentityNotReady = errors.New("character identity not ready")
	ErrEntryNotFound    = errors.New("plan entry not found")
	ErrNotPending       = errors.New("plan entry is not pending")
	ErrQueueEmpty       = errors.New("pending queue is empty")
)

type State string

const (
	LoggedOut State = "LoggedOut"
	LoggedIn  State = "LoggedIn"
)

// IdentitySource reports the logged-in character, if the host knows it yet.
type IdentitySource interface {
	Current() (domain.CharacterInfo, bool)
}

// SettingsSource supplies the configured commands at plan time.
type SettingsSource interface {
	Commands() ([]domain.CommandEntry, []domain.Profile)
}

// Persister saves settings and logs after the audit log changes.
type Persister interface {
	Save(ctx context.Context) error
}

// Recorder receives dispatch metrics.
type Recorder interface {
	Finished(status domain.Status)
	SinkCall(status domain.Status, d time.Duration)
	SetPending(n int)
	SetLogSize(n int)
	Login(ok bool)
	PersistFailed()
}

type Options struct {
	Identity  IdentitySource
	Sink      sink.Sink
	Settings  SettingsSource
	Log       *auditlog.Log
	Persister Persister // optional
	Metrics   Recorder  // optional
	Logger    logger.Logger
	Now       func() time.Time // optional, defaults to time.Now().UTC()
}

type Manager struct {
	identity  IdentitySource
	sink      sink.Sink
	settings  SettingsSource
	log       *auditlog.Log
	persister Persister
	metrics   Recorder
	logger    logger.Logger
	now       func() time.Time

	mu        sync.Mutex
	state     State
	character domain.CharacterInfo
	display   string
	plan      *planner.Plan
	pending   queue
	executed  executedSet
}

func New(opts Options) *Manager {
	m := &Manager{
		identity:  opts.Identity,
		sink:      opts.Sink,
		settings:  opts.Settings,
		log:       opts.Log,
		persister: opts.Persister,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		now:       opts.Now,
		state:     LoggedOut,
		display:   domain.NotLoggedIn,
		executed:  executedSet{},
	}
	if m.log == nil {
		m.log = auditlog.New(auditlog.DefaultCapacity)
	}
	if m.metrics == nil {
		m.metrics = nopRecorder{}
	}
	if m.logger == nil {
		m.logger = logger.Nop()
	}
	if m.now == nil {
		m.now = func() time.Time { return time.Now().UTC() }
	}
	return m
}

// Login builds a fresh plan for the current character and replaces any previous
// one. Entries skipped at build time are logged immediately. Logging in again
// without a logout keeps the once-per-session set.
func (m *Manager) Login(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.identity.Current()
	if !ok {
		m.logger.Warn("login ignored: character identity not ready")
		m.metrics.Login(false)
		return ErrIdentityNotReady
	}

	globals, profiles := m.settings.Commands()
	now := m.now()
	plan := planner.Build(planner.Input{
		Now:            now,
		Character:      info,
		GlobalCommands: globals,
		Profiles:       profiles,
		Executed:       m.executed,
	})

	m.state = LoggedIn
	m.character = info
	m.display = info.Display()
	m.plan = plan
	m.pending = append(queue(nil), plan.Pending...)

	skipped := plan.Skipped()
	for _, e := range skipped {
		m.record(e, now)
	}
	if len(skipped) > 0 {
		m.persist(ctx)
	}

	m.metrics.Login(true)
	m.metrics.SetPending(len(m.pending))

	fields := []logger.Field{
		logger.String("character", plan.CharacterKey),
		logger.Int("entries", len(plan.Entries)),
		logger.Int("pending", len(plan.Pending)),
		logger.Int("skipped", len(skipped)),
	}
	if plan.Profile != nil {
		fields = append(fields, logger.String("profile", plan.Profile.Label))
	}
	m.logger.Info("plan built", fields...)
	return nil
}

// Logout drops the plan, the queue, the session set and the active character.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := len(m.pending)
	m.state = LoggedOut
	m.character = domain.CharacterInfo{}
	m.display = domain.NotLoggedIn
	m.plan = nil
	m.pending = nil
	m.executed.reset()
	m.metrics.SetPending(0)

	m.logger.Info("logged out", logger.Int("dropped_pending", dropped))
}

// Snapshot is a point-in-time copy of the manager state.
type Snapshot struct {
	State           State                   `json:"state"`
	ActiveCharacter string                  `json:"active_character"`
	CharacterKey    string                  `json:"character_key,omitempty"`
	Profile         string                  `json:"profile,omitempty"`
	Plan            []domain.ExecutionEntry `json:"plan"`
	Pending         []domain.ExecutionEntry `json:"pending"`
	SessionExecuted int                     `json:"session_executed"`
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		State:           m.state,
		ActiveCharacter: m.display,
		Plan:            []domain.ExecutionEntry{},
		Pending:         make([]domain.ExecutionEntry, 0, len(m.pending)),
		SessionExecuted: len(m.executed),
	}
	if m.plan != nil {
		snap.CharacterKey = m.plan.CharacterKey
		if m.plan.Profile != nil {
			snap.Profile = m.plan.Profile.Label
		}
		snap.Plan = make([]domain.ExecutionEntry, 0, len(m.plan.Entries))
		for _, e := range m.plan.Entries {
			snap.Plan = append(snap.Plan, *e)
		}
	}
	for _, e := range m.pending {
		snap.Pending = append(snap.Pending, *e)
	}
	return snap
}

// State returns the current login state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ClearLogs empties the audit log and persists the result.
func (m *Manager) ClearLogs(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.log.Clear()
	m.persist(ctx)
	m.logger.Info("audit log cleared")
}

type nopRecorder struct{}

func (nopRecorder) Finished(domain.Status)                {}
func (nopRecorder) SinkCall(domain.Status, time.Duration) {}
func (nopRecorder) SetPending(int)                        {}
func (nopRecorder) SetLogSize(int)                        {}
func (nopRecorder) Login(bool)                            {}
func (nopRecorder) PersistFailed()                        {}
