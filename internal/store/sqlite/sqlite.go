// Package sqlite stores settings in a local SQLite database (pure Go driver).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/utils"
)

// Store keeps the profiles/global commands document in a single-row table and
// the audit log as one row per entry.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and runs the schema.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")
	_, _ = db.Exec("PRAGMA busy_timeout = 5000")

	if _, err := db.Exec(schema); err != nil {
		utils.Close(db)
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Describe() string { return "sqlite" }

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Load(ctx context.Context) (*domain.Settings, error) {
	settings := &domain.Settings{}

	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM settings WHERE id = 1`).Scan(&doc)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("reading settings: %w", err)
	default:
		var exp domain.Export
		if err := json.Unmarshal([]byte(doc), &exp); err != nil {
			return nil, fmt.Errorf("decoding settings: %w", err)
		}
		settings.Profiles = exp.Profiles
		settings.GlobalCommands = exp.GlobalCommands
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, character_key, command_text, status, message
		FROM logs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("reading logs: %w", err)
	}
	defer utils.Close(rows)

	for rows.Next() {
		var (
			entry  domain.LogEntry
			ts     string
			status string
		)
		if err := rows.Scan(&ts, &entry.CharacterKey, &entry.CommandText, &status, &entry.Message); err != nil {
			return nil, fmt.Errorf("scanning log: %w", err)
		}
		if entry.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parsing log timestamp %q: %w", ts, err)
		}
		if entry.Status, err = domain.ParseStatus(status); err != nil {
			return nil, err
		}
		settings.Logs = append(settings.Logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading logs: %w", err)
	}

	return settings, nil
}

// Save rewrites the document and the log table in one transaction.
func (s *Store) Save(ctx context.Context, settings *domain.Settings) error {
	doc, err := json.Marshal(settings.Export())
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, document, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`, string(doc), time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM logs`); err != nil {
		return fmt.Errorf("clearing logs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO logs (timestamp, character_key, command_text, status, message)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer utils.Close(stmt)

	for _, entry := range settings.Logs {
		if _, err := stmt.ExecContext(ctx,
			entry.Timestamp.UTC().Format(time.RFC3339Nano),
			entry.CharacterKey,
			entry.CommandText,
			string(entry.Status),
			entry.Message,
		); err != nil {
			return fmt.Errorf("writing log: %w", err)
		}
	}

	return tx.Commit()
}
