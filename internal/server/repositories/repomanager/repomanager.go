package repomanager

import (
	"context"
	"database/sql"

	"github.com/portobook/portobook/internal/dbx"
	"github.com/portobook/portobook/internal/server/repositories/accounts"
	"github.com/portobook/portobook/internal/server/repositories/assets"
	"github.com/portobook/portobook/internal/server/repositories/transactions"
	"github.com/portobook/portobook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Assets(db dbx.DBTX) assets.Repository
}
