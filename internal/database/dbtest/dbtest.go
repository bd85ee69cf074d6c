// Package dbtest opens a migrated Postgres database for store tests.
// Tests are skipped unless LIBRY_TEST_DATABASE_URL points at a disposable database.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/libry/internal/database"
)

const envDatabaseURL = "LIBRY_TEST_DATABASE_URL"

// Open returns a clean, migrated database or skips the test.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(envDatabaseURL)
	if url == "" {
		t.Skipf("%s not set, skipping store test", envDatabaseURL)
	}

	db, err := database.New(url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))

	_, err = db.ExecContext(ctx, `TRUNCATE transactions, books, members`)
	require.NoError(t, err)

	return db
}
