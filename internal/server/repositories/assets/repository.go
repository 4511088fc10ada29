package assets

import (
	"context"

	"github.com/google/uuid"
	"github.com/portobook/portobook/internal/models"
)

// Repository persists Asset rows together with their price and dividend
// histories. Assets with a nil owner are global reference data visible to
// every user; owned assets are private to their owner.
type Repository interface {
	Create(ctx context.Context, asset *models.Asset) (*models.Asset, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	ByAssetID(ctx context.Context, assetID models.AssetID, owner *uuid.UUID) (*models.Asset, error)
	ByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Asset, error)
	Search(ctx context.Context, fragment string, owner uuid.UUID, limit int) ([]*models.Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, owner uuid.UUID) error

	UpsertPrices(ctx context.Context, observations []models.PriceObservation) error
	PriceAsOf(ctx context.Context, asset uuid.UUID, date models.Date) (*models.PriceObservation, error)
	DeletePrices(ctx context.Context, asset uuid.UUID) error

	UpsertDividends(ctx context.Context, observations []models.DividendObservation) error
	DividendAsOf(ctx context.Context, asset uuid.UUID, date models.Date) (*models.DividendObservation, error)
	DeleteDividends(ctx context.Context, asset uuid.UUID) error
}
