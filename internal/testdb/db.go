// Package testdb provides helpers for tests that run against a real
// PostgreSQL database. Tests using it are skipped unless a database URL is
// set in the environment.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"github.com/phrazzld/studybuddy-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds setup operations against the test database.
const TestTimeout = 5 * time.Second

// Environment variables consulted for the database URL, in order.
const (
	EnvTestDatabaseURL = "STUDYBUDDY_TEST_DB_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// migrateOnce guards schema setup; goose keeps package-level state.
var (
	migrateOnce sync.Once
	migrateErr  error
)

// DatabaseURL returns the first non-empty test database URL.
func DatabaseURL() string {
	if url := os.Getenv(EnvTestDatabaseURL); url != "" {
		return url
	}
	return os.Getenv(EnvDatabaseURL)
}

// Open returns a migrated database connection, or skips t when no database
// URL is configured. The connection is closed when t finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skipf("%s or %s not set - skipping integration test", EnvTestDatabaseURL, EnvDatabaseURL)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "database ping failed")

	migrateOnce.Do(func() {
		log, _ := logger.NewTestLogger()
		migrateErr = postgres.Migrate(context.Background(), db, "up", log)
	})
	require.NoError(t, migrateErr, "failed to apply migrations")

	return db
}

// WithTx runs fn in a transaction that is always rolled back, so tests
// leave no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
