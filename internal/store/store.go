// Package store selects and wraps the settings persistence backend.
package store

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/logincmd/internal/config"
	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
	"github.com/MrSnakeDoc/logincmd/internal/store/file"
	redisstore "github.com/MrSnakeDoc/logincmd/internal/store/redis"
	"github.com/MrSnakeDoc/logincmd/internal/store/sqlite"
)

// ErrInvalidImport marks settings rejected by validation.
var ErrInvalidImport = errors.New("invalid settings import")

// Store loads and saves the whole settings document.
type Store interface {
	Load(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
	Close() error
}

// Describe names a store for logs and /infra.
func Describe(s Store) string {
	if d, ok := s.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	return "custom"
}

// Open returns the backend selected by cfg.Store. rdb is only used by the redis backend.
func Open(cfg *config.Config, rdb *goredis.Client, log logger.Logger) (Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		log.Info("using file settings store", logger.String("path", cfg.SettingsFile))
		return file.New(cfg.SettingsFile), nil
	case config.StoreSQLite:
		log.Info("using sqlite settings store", logger.String("path", cfg.SQLitePath))
		return sqlite.New(cfg.SQLitePath)
	case config.StoreRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis store selected but no redis client")
		}
		log.Info("using redis settings store", logger.String("addr", cfg.RedisAddr))
		return redisstore.NewStore(rdb, redisstore.DefaultPrefix), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
