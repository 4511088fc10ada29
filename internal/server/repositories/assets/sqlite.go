package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

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

func decimalFromString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return d, nil
}

func nullableOwner(owner *uuid.UUID) uuid.NullUUID {
	if owner == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *owner, Valid: true}
}

func (r *SQLiteRepository) ownerExists(ctx context.Context, owner uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`
	if err := r.db.QueryRowContext(ctx, query, owner).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return exists, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	if asset.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id must be empty on create", common.ErrValidation)
	}

	if asset.Owner != nil {
		ok, err := r.ownerExists(ctx, *asset.Owner)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: owner %s", common.ErrForeignKey, asset.Owner)
		}
	}

	created := *asset
	created.ID = uuid.New()

	query := `INSERT INTO assets (id, asset_id, name, owner) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, created.ID, created.AssetID, created.Name, nullableOwner(created.Owner))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return &created, nil
}

func (r *SQLiteRepository) scanAsset(scan func(dest ...any) error) (*models.Asset, error) {
	var asset models.Asset
	var owner uuid.NullUUID

	if err := scan(&asset.ID, &asset.AssetID, &asset.Name, &owner); err != nil {
		return nil, err
	}
	if owner.Valid {
		id := owner.UUID
		asset.Owner = &id
	}
	return &asset, nil
}

func (r *SQLiteRepository) ByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	query := `SELECT id, asset_id, name, owner FROM assets WHERE id = ?`
	asset, err := r.scanAsset(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return asset, nil
}

func (r *SQLiteRepository) ByAssetID(ctx context.Context, assetID models.AssetID, owner *uuid.UUID) (*models.Asset, error) {
	var row *sql.Row
	if owner == nil {
		query := `SELECT id, asset_id, name, owner FROM assets WHERE asset_id = ? AND owner IS NULL`
		row = r.db.QueryRowContext(ctx, query, assetID)
	} else {
		query := `SELECT id, asset_id, name, owner FROM assets WHERE asset_id = ? AND owner = ?`
		row = r.db.QueryRowContext(ctx, query, assetID, *owner)
	}

	asset, err := r.scanAsset(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return asset, nil
}

func (r *SQLiteRepository) ByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Asset, error) {
	query := `SELECT id, asset_id, name, owner FROM assets WHERE owner = ? ORDER BY asset_id`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// likeEscape quotes LIKE metacharacters so a symbol fragment matches
// literally. The backslash is declared via ESCAPE in the query.
func likeEscape(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// Search matches the fragment against the symbol part of the stored asset
// identifier. Results cover the caller's private assets plus global ones.
func (r *SQLiteRepository) Search(ctx context.Context, fragment string, owner uuid.UUID, limit int) ([]*models.Asset, error) {
	pattern := `%:` + likeEscape(fragment) + `%`
	query := `SELECT id, asset_id, name, owner FROM assets
		WHERE asset_id LIKE ? ESCAPE '\' AND (owner = ? OR owner IS NULL)
		ORDER BY asset_id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, pattern, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *SQLiteRepository) collect(rows *sql.Rows) ([]*models.Asset, error) {
	var result []*models.Asset
	for rows.Next() {
		asset, err := r.scanAsset(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
		}
		result = append(result, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM assets WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByOwner(ctx context.Context, owner uuid.UUID) error {
	queries := []string{
		`DELETE FROM asset_prices WHERE asset IN (SELECT id FROM assets WHERE owner = ?)`,
		`DELETE FROM asset_dividends WHERE asset IN (SELECT id FROM assets WHERE owner = ?)`,
		`DELETE FROM assets WHERE owner = ?`,
	}
	for _, query := range queries {
		if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
			return fmt.Errorf("%w: %v", common.ErrStore, err)
		}
	}
	return nil
}

// UpsertPrices records one closing price per asset and date; a repeated
// date overwrites the previous observation whatever its currency was.
func (r *SQLiteRepository) UpsertPrices(ctx context.Context, observations []models.PriceObservation) error {
	query := `INSERT OR REPLACE INTO asset_prices (asset, date, price, currency) VALUES (?, ?, ?, ?)`
	for _, o := range observations {
		if _, err := r.db.ExecContext(ctx, query, o.Asset, o.Date, o.Price.String(), o.Currency); err != nil {
			return fmt.Errorf("%w: %v", common.ErrStore, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) PriceAsOf(ctx context.Context, asset uuid.UUID, date models.Date) (*models.PriceObservation, error) {
	query := `SELECT asset, date, price, currency FROM asset_prices
		WHERE asset = ? AND date <= ? ORDER BY date DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, asset, date)

	var o models.PriceObservation
	var price string
	err := row.Scan(&o.Asset, &o.Date, &price, &o.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	if o.Price, err = decimalFromString(price); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQLiteRepository) DeletePrices(ctx context.Context, asset uuid.UUID) error {
	query := `DELETE FROM asset_prices WHERE asset = ?`
	if _, err := r.db.ExecContext(ctx, query, asset); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertDividends(ctx context.Context, observations []models.DividendObservation) error {
	query := `INSERT OR REPLACE INTO asset_dividends (asset, date, dividend, currency) VALUES (?, ?, ?, ?)`
	for _, o := range observations {
		if _, err := r.db.ExecContext(ctx, query, o.Asset, o.Date, o.Dividend.String(), o.Currency); err != nil {
			return fmt.Errorf("%w: %v", common.ErrStore, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) DividendAsOf(ctx context.Context, asset uuid.UUID, date models.Date) (*models.DividendObservation, error) {
	query := `SELECT asset, date, dividend, currency FROM asset_dividends
		WHERE asset = ? AND date <= ? ORDER BY date DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, asset, date)

	var o models.DividendObservation
	var dividend string
	err := row.Scan(&o.Asset, &o.Date, &dividend, &o.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	if o.Dividend, err = decimalFromString(dividend); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SQLiteRepository) DeleteDividends(ctx context.Context, asset uuid.UUID) error {
	query := `DELETE FROM asset_dividends WHERE asset = ?`
	if _, err := r.db.ExecContext(ctx, query, asset); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}
