package accounts

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

func (r *SQLiteRepository) ownerExists(ctx context.Context, owner uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`
	if err := r.db.QueryRowContext(ctx, query, owner).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return exists, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id must be empty on create", common.ErrValidation)
	}

	ok, err := r.ownerExists(ctx, account.Owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: owner %s", common.ErrForeignKey, account.Owner)
	}

	created := *account
	created.ID = uuid.New()

	query := `INSERT INTO accounts (id, name, alias, owner, kind) VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, created.ID, created.Name, created.Alias, created.Owner, created.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return &created, nil
}

func (r *SQLiteRepository) ByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `SELECT id, name, alias, owner, kind FROM accounts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var account models.Account
	err := row.Scan(&account.ID, &account.Name, &account.Alias, &account.Owner, &account.Kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return &account, nil
}

func (r *SQLiteRepository) ByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Account, error) {
	query := `SELECT id, name, alias, owner, kind FROM accounts WHERE owner = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.Name, &account.Alias, &account.Owner, &account.Kind); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
		}
		result = append(result, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, account *models.Account) error {
	query := `UPDATE accounts SET name = ?, alias = ?, kind = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, account.Name, account.Alias, account.Kind, account.ID)
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
	query := `DELETE FROM accounts WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByOwner(ctx context.Context, owner uuid.UUID) error {
	query := `DELETE FROM accounts WHERE owner = ?`
	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}
