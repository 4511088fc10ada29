package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/portobook/portobook/internal/common"
	"github.com/portobook/portobook/internal/dbx"
	"github.com/portobook/portobook/internal/models"
	"github.com/portobook/portobook/internal/server/access"
	"github.com/portobook/portobook/internal/server/config"
	"github.com/portobook/portobook/internal/server/repositories/repomanager"
	"github.com/portobook/portobook/internal/server/validation"
)

// LedgerService manages accounts and their transactions on behalf of an
// authenticated principal. Every mutation runs the same pipeline: resolve
// the account, authorize the principal against it, validate the record,
// then write — all inside one transaction.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	home        models.AssetID
}

// NewLedgerService constructs a LedgerService using repositories and server config.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *LedgerService {
	return &LedgerService{
		db:          db,
		repomanager: m,
		home:        cfg.HomeCurrency,
	}
}

// resolveAccount fetches an account for an authorization decision. An absent
// account resolves to nil rather than an error; nil never authorizes.
func (s *LedgerService) resolveAccount(ctx context.Context, tx dbx.DBTX, id uuid.UUID) (*models.Account, error) {
	account, err := s.repomanager.Accounts(tx).ByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// InsertAccount creates an account owned by the principal.
func (s *LedgerService) InsertAccount(ctx context.Context, principal uuid.UUID, account *models.Account) (*models.Account, error) {
	candidate := *account
	candidate.Owner = principal
	if err := validation.CheckAccount(&candidate); err != nil {
		return nil, err
	}

	var created *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		created, txErr = s.repomanager.Accounts(tx).Create(ctx, &candidate)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateAccount rewrites the name, alias and kind of an account the
// principal owns. Ownership never changes on update.
func (s *LedgerService) UpdateAccount(ctx context.Context, principal uuid.UUID, account *models.Account) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		existing, err := s.resolveAccount(ctx, tx, account.ID)
		if err != nil {
			return err
		}
		if !access.Authorize(principal, existing) {
			return fmt.Errorf("%w: account %s", common.ErrDenied, account.ID)
		}

		updated := *account
		updated.Owner = existing.Owner
		if err := validation.CheckAccount(&updated); err != nil {
			return err
		}
		return s.repomanager.Accounts(tx).Update(ctx, &updated)
	})
}

// FetchAccounts lists the principal's accounts.
func (s *LedgerService) FetchAccounts(ctx context.Context, principal uuid.UUID) ([]*models.Account, error) {
	return s.repomanager.Accounts(s.db).ByOwner(ctx, principal)
}

// DeleteAccount removes an account and its transactions in one transaction.
// An already absent account is a successful no-op.
func (s *LedgerService) DeleteAccount(ctx context.Context, principal uuid.UUID, id uuid.UUID) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		existing, err := s.resolveAccount(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		if !access.Authorize(principal, existing) {
			return fmt.Errorf("%w: account %s", common.ErrDenied, id)
		}

		if err := s.repomanager.Transactions(tx).DeleteByAccount(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Accounts(tx).Delete(ctx, id)
	})
}

// InsertTransaction records a transaction against an account the principal
// owns, after the bookkeeping rules pass.
func (s *LedgerService) InsertTransaction(ctx context.Context, principal uuid.UUID, txn *models.Transaction) (*models.Transaction, error) {
	var created *models.Transaction
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		account, err := s.resolveAccount(ctx, tx, txn.Account)
		if err != nil {
			return err
		}
		if !access.Authorize(principal, account) {
			return fmt.Errorf("%w: account %s", common.ErrDenied, txn.Account)
		}
		if err := validation.CheckTransaction(s.home, account, txn); err != nil {
			return err
		}

		var txErr error
		created, txErr = s.repomanager.Transactions(tx).Create(ctx, txn)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTransaction rewrites a transaction. Both the account it currently
// sits in and the account it would move to must belong to the principal, and
// the new record must pass the same rules as an insert.
func (s *LedgerService) UpdateTransaction(ctx context.Context, principal uuid.UUID, txn *models.Transaction) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		existing, err := s.repomanager.Transactions(tx).ByID(ctx, txn.ID)
		if err != nil {
			return err
		}

		current, err := s.resolveAccount(ctx, tx, existing.Account)
		if err != nil {
			return err
		}
		if !access.Authorize(principal, current) {
			return fmt.Errorf("%w: account %s", common.ErrDenied, existing.Account)
		}

		target := current
		if txn.Account != existing.Account {
			if target, err = s.resolveAccount(ctx, tx, txn.Account); err != nil {
				return err
			}
			if !access.Authorize(principal, target) {
				return fmt.Errorf("%w: account %s", common.ErrDenied, txn.Account)
			}
		}
		if err := validation.CheckTransaction(s.home, target, txn); err != nil {
			return err
		}
		return s.repomanager.Transactions(tx).Update(ctx, txn)
	})
}

// FetchTransactions lists the transactions of an account the principal owns.
func (s *LedgerService) FetchTransactions(ctx context.Context, principal uuid.UUID, account uuid.UUID) ([]*models.Transaction, error) {
	resolved, err := s.resolveAccount(ctx, s.db, account)
	if err != nil {
		return nil, err
	}
	if !access.Authorize(principal, resolved) {
		return nil, fmt.Errorf("%w: account %s", common.ErrDenied, account)
	}
	return s.repomanager.Transactions(s.db).ByAccount(ctx, account)
}

// DeleteTransaction removes a transaction. An already absent transaction is
// a successful no-op; one whose account the principal does not own is
// denied.
func (s *LedgerService) DeleteTransaction(ctx context.Context, principal uuid.UUID, id uuid.UUID) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txn, err := s.repomanager.Transactions(tx).ByID(ctx, id)
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		account, err := s.resolveAccount(ctx, tx, txn.Account)
		if err != nil {
			return err
		}
		if !access.Authorize(principal, account) {
			return fmt.Errorf("%w: transaction %s", common.ErrDenied, id)
		}
		return s.repomanager.Transactions(tx).Delete(ctx, id)
	})
}
