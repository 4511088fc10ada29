// Package repomanager provides a concrete RepositoryManager for SQLite,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/portobook/portobook/internal/dbx"
	"github.com/portobook/portobook/internal/server/migrations"
	"github.com/portobook/portobook/internal/server/repositories/accounts"
	"github.com/portobook/portobook/internal/server/repositories/assets"
	"github.com/portobook/portobook/internal/server/repositories/transactions"
	"github.com/portobook/portobook/internal/server/repositories/users"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations
// and exposes a schema migration hook.
type SQLiteRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

// Transactions returns a transactions.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewSQLiteRepository(db)
}

// Assets returns an assets.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Assets(db dbx.DBTX) assets.Repository {
	return assets.NewSQLiteRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("sqlite3")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewSQLiteRepositoryManager constructs a SQLite-backed RepositoryManager.
func NewSQLiteRepositoryManager() (RepositoryManager, error) {
	return &SQLiteRepositoryManager{}, nil
}
