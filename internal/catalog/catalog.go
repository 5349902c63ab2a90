// Package catalog holds the configured profiles and global commands in memory.
package catalog

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

// Catalog is the in-memory source of truth for what a login plan is built from.
// The store and the settings watcher write it; the session manager reads it.
type Catalog struct {
	mu             sync.RWMutex
	profiles       []domain.Profile
	globalCommands []domain.CommandEntry
	lastReload     time.Time // Timestamp of last full replace
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		profiles:       []domain.Profile{},
		globalCommands: []domain.CommandEntry{},
	}
}

// Replace swaps profiles and global commands wholesale.
func (c *Catalog) Replace(profiles []domain.Profile, globals []domain.CommandEntry) {
	profiles = domain.CloneProfiles(profiles)
	globals = domain.CloneCommands(globals)
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	if globals == nil {
		globals = []domain.CommandEntry{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.profiles = profiles
	c.globalCommands = globals
	c.lastReload = time.Now()
}

// Commands returns copies of the global commands and profiles, in configured order.
func (c *Catalog) Commands() ([]domain.CommandEntry, []domain.Profile) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return domain.CloneCommands(c.globalCommands), domain.CloneProfiles(c.profiles)
}

// Export returns the shareable settings subset.
func (c *Catalog) Export() domain.Export {
	globals, profiles := c.Commands()
	return domain.Export{Profiles: profiles, GlobalCommands: globals}
}

// Counts returns the number of profiles and global commands.
func (c *Catalog) Counts() (profiles, globals int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.profiles), len(c.globalCommands)
}

// LastReload returns the timestamp of the last Replace
func (c *Catalog) LastReload() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastReload
}
