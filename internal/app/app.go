package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/logincmd/internal/config"
	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/identity"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
	"github.com/MrSnakeDoc/logincmd/internal/metrics"
	"github.com/MrSnakeDoc/logincmd/internal/scheduler"
	"github.com/MrSnakeDoc/logincmd/internal/session"
	"github.com/MrSnakeDoc/logincmd/internal/sink"
	"github.com/MrSnakeDoc/logincmd/internal/version"
)

type App struct {
	cfg        *config.Config
	logger     logger.Logger
	core       *Core
	server     *httpserver.Server
	session    *session.Manager
	dispatcher *scheduler.Dispatcher
	reloader   *scheduler.SettingsReloader // nil unless watching a settings file
}

func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	core, err := OpenCore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	out, err := newSink(cfg, core, loggerClient)
	if err != nil {
		core.Close()
		return nil, err
	}

	holder := identity.NewHolder()
	if cfg.HasPresetCharacter() {
		holder.Set(domain.CharacterInfo{
			Name:      cfg.CharacterName,
			WorldID:   cfg.CharacterWorld,
			WorldName: cfg.WorldName,
		})
		loggerClient.Info("character identity preset",
			logger.String("character", cfg.CharacterName),
			logger.Int("world_id", int(cfg.CharacterWorld)))
	}

	prom := metrics.New()
	prom.SetLogSize(core.Logs.Len())

	mgr := session.New(session.Options{
		Identity:  holder,
		Sink:      out,
		Settings:  core.Catalog,
		Log:       core.Logs,
		Persister: core.Persister,
		Metrics:   prom,
		Logger:    loggerClient.Named("session"),
	})

	dispatcher := scheduler.NewDispatcher(mgr, loggerClient.Named("dispatcher"), cfg.TickInterval)

	var reloader *scheduler.SettingsReloader
	var reloadTrigger chan struct{}
	if cfg.Store == config.StoreFile && cfg.WatchSettings {
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewSettingsReloader(
			cfg.SettingsFile,
			core.Catalog,
			loggerClient.Named("settings"),
			cfg.WatchDebounce,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("settings watcher disabled", logger.String("store", cfg.Store))
	}

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		Session:        mgr,
		Identity:       holder,
		Catalog:        core.Catalog,
		Logs:           core.Logs,
		Persister:      core.Persister,
		SinkName:       sink.Name(out),
		MetricsHandler: prom.Handler(),
		ReloadTrigger:  reloadTrigger,
	}

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		core:       core,
		server:     httpserver.New(cfg, loggerClient, d),
		session:    mgr,
		dispatcher: dispatcher,
		reloader:   reloader,
	}, nil
}

func newSink(cfg *config.Config, core *Core, log logger.Logger) (sink.Sink, error) {
	switch cfg.Sink {
	case config.SinkExec:
		return sink.NewExec(cfg.ExecShell, cfg.ExecTimeout, log.Named("sink")), nil
	case config.SinkRedis:
		if core.Redis == nil {
			return nil, fmt.Errorf("redis sink selected but no redis client")
		}
		return sink.NewPublisher(core.Redis, cfg.SinkChannel, cfg.SinkRequireSubscriber), nil
	case config.SinkLog:
		return sink.NewLog(log.Named("sink")), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}

// Run serves until ctx is cancelled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting logincmd %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("logincmd %s", version.String())
	defer a.core.Close()

	if a.cfg.HasPresetCharacter() {
		if err := a.session.Login(ctx); err != nil {
			a.logger.Warn("initial login failed", logger.Error(err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.dispatcher.Run(gctx) })
	if a.reloader != nil {
		g.Go(func() error {
			// A broken watcher only stops live reloads; dispatch keeps running.
			if err := a.reloader.Run(gctx); err != nil {
				a.logger.Warn("settings watcher stopped", logger.Error(err))
			}
			return nil
		})
	}
	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		a.dispatcher.Stop()
		if a.reloader != nil {
			a.reloader.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.session.Logout()
	a.logger.Info("✅ logincmd stopped cleanly")
	return nil
}
