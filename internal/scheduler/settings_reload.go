package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/logincmd/internal/catalog"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
	"github.com/MrSnakeDoc/logincmd/internal/store/file"
	"github.com/MrSnakeDoc/logincmd/internal/utils"
)

// DefaultDebounce coalesces the burst of events editors emit for one save.
const DefaultDebounce = 300 * time.Millisecond

// SettingsReloader watches the YAML settings file and reloads profiles and global
// commands into the catalog when it changes. The audit log is never reloaded: the
// running process is its only writer.
type SettingsReloader struct {
	path          string
	catalog       *catalog.Catalog
	logger        logger.Logger
	debounce      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewSettingsReloader creates a new settings reloader
func NewSettingsReloader(
	path string,
	cat *catalog.Catalog,
	log logger.Logger,
	debounce time.Duration,
	manualTrigger chan struct{},
) *SettingsReloader {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SettingsReloader{
		path:          path,
		catalog:       cat,
		logger:        log,
		debounce:      debounce,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Run watches until ctx is done or Stop is called.
func (sr *SettingsReloader) Run(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer utils.Close(w)

	// Watch the directory: atomic saves replace the file, which drops a file watch.
	dir := filepath.Dir(sr.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	sr.logger.Info("watching settings file", logger.String("path", sr.path))

	target := filepath.Clean(sr.path)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(sr.debounce)
			} else {
				timer.Reset(sr.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			sr.reloadAndLog(ctx)
		case <-sr.manualTrigger:
			sr.logger.Info("manual reload triggered")
			sr.reloadAndLog(ctx)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			sr.logger.Warn("settings watcher error", logger.Error(err))
		case <-sr.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop stops the reloader
func (sr *SettingsReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

func (sr *SettingsReloader) reloadAndLog(ctx context.Context) {
	if _, err := sr.Reload(ctx); err != nil {
		sr.logger.Error("failed to reload settings", logger.Error(err))
	}
}

// Reload reads the settings file into the catalog. It reports whether the catalog
// changed; an unchanged or missing file leaves it alone.
func (sr *SettingsReloader) Reload(_ context.Context) (bool, error) {
	data, err := os.ReadFile(sr.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read settings: %w", err)
	}

	settings, err := file.Decode(data)
	if err != nil {
		return false, err
	}
	if err := settings.Normalize(); err != nil {
		return false, fmt.Errorf("invalid settings: %w", err)
	}

	// Our own saves rewrite the file after every dispatch; skip those.
	current := sr.catalog.Export()
	if reflect.DeepEqual(current, settings.Export()) {
		sr.logger.Debug("settings unchanged, skipping reload")
		return false, nil
	}

	sr.catalog.Replace(settings.Profiles, settings.GlobalCommands)
	sr.logger.Info("settings reloaded",
		logger.Int("profiles", len(settings.Profiles)),
		logger.Int("global_commands", len(settings.GlobalCommands)))
	return true, nil
}
