package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/portobook/portobook/internal/common"
	"github.com/portobook/portobook/internal/dbx"
	"github.com/portobook/portobook/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) accountExists(ctx context.Context, account uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = ?)`
	if err := r.db.QueryRowContext(ctx, query, account).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return exists, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if txn.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id must be empty on create", common.ErrValidation)
	}

	ok, err := r.accountExists(ctx, txn.Account)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: account %s", common.ErrForeignKey, txn.Account)
	}

	created := *txn
	created.ID = uuid.New()

	query := `INSERT INTO transactions (id, account, date, action) VALUES (?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, created.ID, created.Account, created.Date, created.Action)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return &created, nil
}

func (r *SQLiteRepository) ByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT id, account, date, action FROM transactions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var txn models.Transaction
	err := row.Scan(&txn.ID, &txn.Account, &txn.Date, &txn.Action)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return &txn, nil
}

func (r *SQLiteRepository) ByAccount(ctx context.Context, account uuid.UUID) ([]*models.Transaction, error) {
	query := `SELECT id, account, date, action FROM transactions WHERE account = ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, account)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(&txn.ID, &txn.Account, &txn.Date, &txn.Action); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
		}
		result = append(result, &txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, txn *models.Transaction) error {
	query := `UPDATE transactions SET account = ?, date = ?, action = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, txn.Account, txn.Date, txn.Action, txn.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByAccount(ctx context.Context, account uuid.UUID) error {
	query := `DELETE FROM transactions WHERE account = ?`
	if _, err := r.db.ExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByOwner(ctx context.Context, owner uuid.UUID) error {
	query := `DELETE FROM transactions WHERE account IN (SELECT id FROM accounts WHERE owner = ?)`
	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}
