package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/logincmd/internal/auditlog"
	"github.com/MrSnakeDoc/logincmd/internal/catalog"
	"github.com/MrSnakeDoc/logincmd/internal/config"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
	"github.com/MrSnakeDoc/logincmd/internal/redis"
	"github.com/MrSnakeDoc/logincmd/internal/store"
	"github.com/MrSnakeDoc/logincmd/internal/utils"
)

// Core is the persistence half of the service: the store, the catalog and the
// audit log restored from it. The CLI subcommands use it without the HTTP server.
type Core struct {
	Config    *config.Config
	Logger    logger.Logger
	Redis     *goredis.Client // nil unless the store or the sink is redis
	Store     store.Store
	Catalog   *catalog.Catalog
	Logs      *auditlog.Log
	Persister *store.Persister
}

// OpenCore connects Redis when needed, opens the configured store and restores
// settings and history from it.
func OpenCore(ctx context.Context, cfg *config.Config, log logger.Logger) (*Core, error) {
	c := &Core{
		Config:  cfg,
		Logger:  log,
		Catalog: catalog.New(),
		Logs:    auditlog.New(cfg.LogCapacity),
	}

	if cfg.NeedsRedis() {
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		rdb, err := redis.New(ctx, redis.OptionsFromConfig(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Redis = rdb
		log.Info("Redis initialized successfully")
	}

	st, err := store.Open(cfg, c.Redis, log)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	c.Store = st
	c.Persister = store.NewPersister(st, c.Catalog, c.Logs)

	profiles, globals, err := c.Persister.Restore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	log.Info("settings restored",
		logger.String("store", store.Describe(st)),
		logger.Int("profiles", profiles),
		logger.Int("global_commands", globals),
		logger.Int("log_entries", c.Logs.Len()))

	return c, nil
}

// Close releases the store and the Redis client.
func (c *Core) Close() {
	if c.Store != nil {
		utils.MustClose(c.Store, "store", c.Logger)
	}
	if c.Redis != nil {
		utils.MustClose(c.Redis, "redis", c.Logger)
	}
}
