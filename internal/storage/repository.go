// Package storage provides the SQLite-backed snapshot store.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"trackfin/internal/blob"
	"trackfin/internal/core"
	applog "trackfin/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the snapshot blob in a single-row key-value table.
type SQLiteStore struct {
	db     *sql.DB
	key    string
	logger *applog.Logger
}

func NewSQLiteStore(dbPath, key string, logger *applog.Logger) (*SQLiteStore, error) {
	if key == "" {
		key = blob.DefaultKey
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		key:    key,
		logger: logger.WithComponent(applog.ComponentStorage),
	}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements blob.SnapshotStore.
func (s *SQLiteStore) Load(ctx context.Context) (core.Snapshot, bool, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM snapshots WHERE key = ?`, s.key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, false, nil
	}
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("read snapshot row: %w", err)
	}

	snap, err := blob.Decode(body)
	if err != nil {
		// A corrupt row is treated as no saved state.
		s.logger.WarnContext(ctx, "Discarding malformed snapshot blob",
			applog.FieldSnapshotKey, s.key,
			applog.FieldError, err)
		return core.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save implements blob.SnapshotStore.
func (s *SQLiteStore) Save(ctx context.Context, snap core.Snapshot) error {
	body, err := blob.Encode(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		s.key, body, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write snapshot row: %w", err)
	}
	return nil
}
