// Package dbtest opens a migrated Postgres database for store tests.
// Tests are skipped unless CLINIC_TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vetclinic/internal/database"
)

const (
	envURL = "CLINIC_TEST_DATABASE_URL"
	lockID = 7312
)

// Open returns a connection to a freshly truncated clinic schema.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(envURL)
	if url == "" {
		t.Skipf("%s not set, skipping database test (see make test-db)", envURL)
	}

	db, err := database.New(url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()

	// Packages run in parallel against the same database; hold a session lock
	// until the test finishes.
	conn, err := db.Conn(ctx)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockID)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
		conn.Close()
	})

	_, err = database.Migrate(ctx, db)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `TRUNCATE invoice_items, invoices, checkins, patients RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE counters SET value = CASE key WHEN 'patient' THEN 10000 ELSE 1 END`)
	require.NoError(t, err)

	return db
}
