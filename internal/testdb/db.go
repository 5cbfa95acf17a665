package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/postgres"
	"github.com/Cipollinka/MinSpiritCountdown/internal/redact"
)

const setupTimeout = 30 * time.Second

// Open connects to the test database and applies the migrations. The
// connection is closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		if IsCI() {
			t.Fatalf("no test database configured: set %s in CI", EnvDatabaseURL)
		}
		t.Skipf("%s not set, skipping database test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to open test database: %s", redact.Error(err))
	}
	t.Cleanup(func() { _ = db.Close() })

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := postgres.Migrate(ctx, db, quiet); err != nil {
		t.Fatalf("failed to migrate test database: %s", redact.Error(err))
	}
	return db
}

// DeviceID returns a device ID unique to this test run. Its rows are
// deleted when the test ends, so tests sharing a database stay isolated.
func DeviceID(t *testing.T, db *sql.DB) string {
	t.Helper()

	id := "test-" + uuid.NewString()
	t.Cleanup(func() {
		if _, err := db.Exec(`DELETE FROM kv_entries WHERE device_id = $1`, id); err != nil {
			t.Logf("failed to clean up device %s: %v", id, err)
		}
	})
	return id
}
