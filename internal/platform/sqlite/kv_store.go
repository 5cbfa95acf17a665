// Package sqlite implements the key-value device store on a local SQLite file.
// It backs the minspirit CLI, where a single device owns the database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/migrate"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	getQuery = `SELECT value FROM kv_entries WHERE device_id = ? AND key = ?`

	upsertQuery = `
		INSERT INTO kv_entries (device_id, key, value, updated_at)
		VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (device_id, key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	deleteQuery = `DELETE FROM kv_entries WHERE device_id = ? AND key = ?`
)

// SQLiteKVStore implements store.DeviceStore over a SQLite database.
type SQLiteKVStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.DeviceStore = (*SQLiteKVStore)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
// The parent directory is created when missing.
func Open(ctx context.Context, path string, log *slog.Logger) (*SQLiteKVStore, error) {
	if log == nil {
		log = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if err := migrate.Up(ctx, db, "sqlite3", migrationsFS, "migrations", log); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteKVStore{
		db:     db,
		logger: log.With(slog.String("component", "sqlite_kv_store")),
	}, nil
}

// ForDevice returns the bucket of deviceID.
func (s *SQLiteKVStore) ForDevice(deviceID string) store.KeyValueStore {
	return &sqliteDeviceKV{parent: s, deviceID: deviceID}
}

// Close closes the underlying database.
func (s *SQLiteKVStore) Close() error {
	return s.db.Close()
}

type sqliteDeviceKV struct {
	parent   *SQLiteKVStore
	deviceID string
}

func (d *sqliteDeviceKV) check(key string) error {
	if err := store.ValidateKey(d.deviceID); err != nil {
		return fmt.Errorf("device id: %w", err)
	}
	return store.ValidateKey(key)
}

func (d *sqliteDeviceKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := d.check(key); err != nil {
		return nil, err
	}

	var value string
	err := d.parent.db.QueryRowContext(ctx, getQuery, d.deviceID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		return nil, store.NewStoreError(key, "get", "query failed", err)
	}
	return []byte(value), nil
}

func (d *sqliteDeviceKV) Set(ctx context.Context, key string, value []byte) error {
	if err := d.check(key); err != nil {
		return err
	}
	if _, err := d.parent.db.ExecContext(ctx, upsertQuery, d.deviceID, key, string(value)); err != nil {
		return store.NewStoreError(key, "set", "upsert failed", err)
	}
	return nil
}

func (d *sqliteDeviceKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		if err := d.check(key); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ctx = logger.WithLogger(ctx, logger.FromContextOrDefault(ctx, d.parent.logger))
	return store.RunInTransaction(ctx, d.parent.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, upsertQuery, d.deviceID, key, string(entries[key])); err != nil {
				return store.NewStoreError(key, "set", "upsert failed", err)
			}
		}
		return nil
	})
}

func (d *sqliteDeviceKV) Delete(ctx context.Context, key string) error {
	if err := d.check(key); err != nil {
		return err
	}
	if _, err := d.parent.db.ExecContext(ctx, deleteQuery, d.deviceID, key); err != nil {
		return store.NewStoreError(key, "delete", "delete failed", err)
	}
	return nil
}
