package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/migrate"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	getQuery = `SELECT value FROM kv_entries WHERE device_id = $1 AND key = $2`

	upsertQuery = `
		INSERT INTO kv_entries (device_id, key, value, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (device_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	deleteQuery = `DELETE FROM kv_entries WHERE device_id = $1 AND key = $2`
)

// Open connects to PostgreSQL through the pgx database/sql driver and verifies
// the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded key-value schema migrations.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	return migrate.Up(ctx, db, "postgres", migrationsFS, "migrations", log)
}

// PostgresKVStore implements store.DeviceStore with one kv_entries row per
// device and key.
type PostgresKVStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure PostgresKVStore implements store.DeviceStore interface
var _ store.DeviceStore = (*PostgresKVStore)(nil)

// NewPostgresKVStore creates a new PostgreSQL implementation of store.DeviceStore.
// If log is nil, slog.Default() is used.
func NewPostgresKVStore(db *sql.DB, log *slog.Logger) *PostgresKVStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresKVStore{
		db:     db,
		logger: log.With(slog.String("component", "postgres_kv_store")),
	}
}

// ForDevice implements store.DeviceStore.ForDevice
func (s *PostgresKVStore) ForDevice(deviceID string) store.KeyValueStore {
	return &postgresDeviceKV{parent: s, deviceID: deviceID}
}

// Close implements store.DeviceStore.Close
func (s *PostgresKVStore) Close() error {
	return s.db.Close()
}

type postgresDeviceKV struct {
	parent   *PostgresKVStore
	deviceID string
}

func (d *postgresDeviceKV) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, d.parent.logger).
		With(slog.String("device_id", d.deviceID))
}

func (d *postgresDeviceKV) check(key string) error {
	if err := store.ValidateKey(d.deviceID); err != nil {
		return fmt.Errorf("device id: %w", err)
	}
	return store.ValidateKey(key)
}

func (d *postgresDeviceKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := d.check(key); err != nil {
		return nil, err
	}

	var value []byte
	err := d.parent.db.QueryRowContext(ctx, getQuery, d.deviceID, key).Scan(&value)
	if err != nil {
		mapped := MapError(err)
		if !store.IsNotFoundError(mapped) {
			d.log(ctx).Error("failed to read key",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, mapped
	}
	return value, nil
}

func (d *postgresDeviceKV) Set(ctx context.Context, key string, value []byte) error {
	if err := d.check(key); err != nil {
		return err
	}
	if err := upsert(ctx, d.parent.db, d.deviceID, key, value); err != nil {
		d.log(ctx).Error("failed to write key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (d *postgresDeviceKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		if err := d.check(key); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	// fixed order keeps row locks consistent between concurrent writers
	sort.Strings(keys)

	return store.RunInTransaction(logger.WithLogger(ctx, d.log(ctx)), d.parent.db,
		func(ctx context.Context, tx *sql.Tx) error {
			for _, key := range keys {
				if err := upsert(ctx, tx, d.deviceID, key, entries[key]); err != nil {
					return store.NewStoreError(key, "set", "failed to write value", err)
				}
			}
			return nil
		})
}

func (d *postgresDeviceKV) Delete(ctx context.Context, key string) error {
	if err := d.check(key); err != nil {
		return err
	}
	if _, err := d.parent.db.ExecContext(ctx, deleteQuery, d.deviceID, key); err != nil {
		d.log(ctx).Error("failed to delete key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

func upsert(ctx context.Context, q store.DBTX, deviceID, key string, value []byte) error {
	if _, err := q.ExecContext(ctx, upsertQuery, deviceID, key, string(value)); err != nil {
		return MapError(err)
	}
	return nil
}
