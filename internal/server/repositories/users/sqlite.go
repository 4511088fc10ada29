package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id must be empty on create", common.ErrValidation)
	}

	created := *user
	created.ID = uuid.New()

	query := `INSERT INTO users (id, username, password, login_at, attempts) VALUES (?, ?, ?, NULL, 0)`
	if _, err := r.db.ExecContext(ctx, query, created.ID, created.Username, created.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return &created, nil
}

func (r *SQLiteRepository) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, username, password, login_at, attempts FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) ByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password, login_at, attempts FROM users WHERE username = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	var loginAt sql.NullString

	err := row.Scan(&user.ID, &user.Username, &user.Password, &loginAt, &user.Attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	if loginAt.Valid {
		at, err := time.Parse(time.RFC3339Nano, loginAt.String)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
		}
		user.LoginAt = at
	}
	return &user, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET username = ?, password = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.Password, user.ID)
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

func (r *SQLiteRepository) SetAttempts(ctx context.Context, id uuid.UUID, attempts int, at time.Time) error {
	query := `UPDATE users SET attempts = ?, login_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, attempts, at.UTC().Format(time.RFC3339Nano), id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}

func (r *SQLiteRepository) ResetAttempts(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET attempts = 0, login_at = NULL WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}
