package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

// Store persists settings in Redis: the export document as JSON under one key,
// the audit log as a list of JSON entries.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore creates a new Redis store. The client stays owned by the caller.
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
	}
}

// Load reads the settings document and the audit log. Missing keys yield empty settings.
func (s *Store) Load(ctx context.Context) (*domain.Settings, error) {
	settings := &domain.Settings{}

	data, err := s.client.Get(ctx, SettingsKey(s.prefix)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		// First run
	case err != nil:
		return nil, fmt.Errorf("failed to get settings: %w", err)
	default:
		var exp domain.Export
		if err := json.Unmarshal(data, &exp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
		}
		settings.Profiles = exp.Profiles
		settings.GlobalCommands = exp.GlobalCommands
	}

	raw, err := s.client.LRange(ctx, LogsKey(s.prefix), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}
	settings.Logs = make([]domain.LogEntry, 0, len(raw))
	for i, item := range raw {
		var entry domain.LogEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log %d: %w", i, err)
		}
		settings.Logs = append(settings.Logs, entry)
	}

	return settings, nil
}

// Save replaces both keys in a single MULTI/EXEC so readers never see a half-written log.
func (s *Store) Save(ctx context.Context, settings *domain.Settings) error {
	data, err := json.Marshal(settings.Export())
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	logs := make([]interface{}, 0, len(settings.Logs))
	for _, entry := range settings.Logs {
		b, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal log entry: %w", err)
		}
		logs = append(logs, b)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, SettingsKey(s.prefix), data, 0)
		pipe.Del(ctx, LogsKey(s.prefix))
		if len(logs) > 0 {
			pipe.RPush(ctx, LogsKey(s.prefix), logs...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Describe() string { return "redis" }

// Close is a no-op: the client is shared with other components.
func (s *Store) Close() error { return nil }
