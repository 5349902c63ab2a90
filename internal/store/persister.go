package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/logincmd/internal/auditlog"
	"github.com/MrSnakeDoc/logincmd/internal/catalog"
	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

// Persister keeps the catalog and the audit log in sync with a Store.
// Saves are serialized so concurrent writers never interleave on the backend.
type Persister struct {
	mu      sync.Mutex
	store   Store
	catalog *catalog.Catalog
	log     *auditlog.Log
}

func NewPersister(s Store, c *catalog.Catalog, l *auditlog.Log) *Persister {
	return &Persister{store: s, catalog: c, log: l}
}

// Store returns the underlying backend.
func (p *Persister) Store() Store { return p.store }

// Snapshot assembles the current settings document.
func (p *Persister) Snapshot() *domain.Settings {
	exp := p.catalog.Export()
	return &domain.Settings{
		Profiles:       exp.Profiles,
		GlobalCommands: exp.GlobalCommands,
		Logs:           p.log.Entries(),
	}
}

// Save writes the current catalog and audit log.
func (p *Persister) Save(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.store.Save(ctx, p.Snapshot())
}

// Restore loads the backend into the catalog and the audit log.
// It returns the number of profiles and global commands loaded.
func (p *Persister) Restore(ctx context.Context) (profiles, globals int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	settings, err := p.store.Load(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := settings.Normalize(); err != nil {
		return 0, 0, fmt.Errorf("invalid settings: %w", err)
	}

	p.catalog.Replace(settings.Profiles, settings.GlobalCommands)
	p.log.Replace(settings.Logs)
	return len(settings.Profiles), len(settings.GlobalCommands), nil
}

// Import replaces profiles and global commands, keeps the audit log, and saves.
func (p *Persister) Import(ctx context.Context, exp domain.Export) error {
	settings := &domain.Settings{Profiles: exp.Profiles, GlobalCommands: exp.GlobalCommands}
	if err := settings.Normalize(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.catalog.Replace(settings.Profiles, settings.GlobalCommands)
	return p.store.Save(ctx, p.Snapshot())
}
