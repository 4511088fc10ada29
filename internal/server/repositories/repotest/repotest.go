// Package repotest provides helpers for repository and service tests that
// run against a real SQLite database in a temporary directory.
//
// Migrations are applied with goose directly rather than through the
// repository manager, so that repository packages can use this helper from
// their own test files without an import cycle.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/portobook/portobook/internal/dbx"
	"github.com/portobook/portobook/internal/server/migrations"
)

// OpenDB opens a fresh file-backed SQLite database with the full schema
// applied. The database lives in t.TempDir and is closed on cleanup.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := dbx.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))

	return db
}
