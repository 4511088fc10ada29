package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/portobook/portobook/internal/common"
	"github.com/portobook/portobook/internal/dbx"
	"github.com/portobook/portobook/internal/models"
	"github.com/portobook/portobook/internal/server/access"
	"github.com/portobook/portobook/internal/server/config"
	"github.com/portobook/portobook/internal/server/repositories/repomanager"
)

// AssetService manages the asset catalog and its price and dividend
// histories. Global assets (nil owner) are readable by every user but only
// mutated outside user requests; owned assets belong to one user. As-of
// lookups are memoized because valuation code asks for the same asset and
// date many times in a row.
type AssetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *gocache.Cache
	searchLimit int
}

// NewAssetService constructs an AssetService using repositories and server config.
func NewAssetService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AssetService {
	return &AssetService{
		db:          db,
		repomanager: m,
		cache:       gocache.New(cfg.PriceCacheTTL, 2*cfg.PriceCacheTTL),
		searchLimit: cfg.AssetSearchLimit,
	}
}

// CreateAsset registers a private asset for the principal.
func (s *AssetService) CreateAsset(ctx context.Context, principal uuid.UUID, asset *models.Asset) (*models.Asset, error) {
	if principal == uuid.Nil {
		return nil, fmt.Errorf("%w: no principal", common.ErrDenied)
	}
	if asset.AssetID.IsZero() {
		return nil, fmt.Errorf("%w: missing asset identifier", common.ErrValidation)
	}

	owner := principal
	candidate := *asset
	candidate.Owner = &owner

	var created *models.Asset
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		created, txErr = s.repomanager.Assets(tx).Create(ctx, &candidate)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteAsset removes a private asset together with its price and dividend
// histories. An already absent asset is a successful no-op; global assets
// cannot be deleted through here.
func (s *AssetService) DeleteAsset(ctx context.Context, principal uuid.UUID, id uuid.UUID) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Assets(tx)

		asset, err := repo.ByID(ctx, id)
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !access.AuthorizeAsset(principal, asset) {
			return fmt.Errorf("%w: asset %s", common.ErrDenied, id)
		}

		if err := repo.DeletePrices(ctx, id); err != nil {
			return err
		}
		if err := repo.DeleteDividends(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.purge(id)
	return nil
}

// Search finds assets whose symbol starts with the fragment, among the
// principal's private assets and the global catalog.
func (s *AssetService) Search(ctx context.Context, principal uuid.UUID, fragment string) ([]*models.Asset, error) {
	return s.repomanager.Assets(s.db).Search(ctx, fragment, principal, s.searchLimit)
}

// FetchByOwner lists the principal's private assets.
func (s *AssetService) FetchByOwner(ctx context.Context, principal uuid.UUID) ([]*models.Asset, error) {
	return s.repomanager.Assets(s.db).ByOwner(ctx, principal)
}

// UpsertPrices records closing prices for a private asset the principal
// owns and drops any cached lookups for it.
func (s *AssetService) UpsertPrices(ctx context.Context, principal uuid.UUID, asset uuid.UUID, observations []models.PriceObservation) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Assets(tx)

		resolved, err := repo.ByID(ctx, asset)
		if err != nil {
			return err
		}
		if !access.AuthorizeAsset(principal, resolved) {
			return fmt.Errorf("%w: asset %s", common.ErrDenied, asset)
		}

		pinned := make([]models.PriceObservation, len(observations))
		copy(pinned, observations)
		for i := range pinned {
			pinned[i].Asset = asset
		}
		return repo.UpsertPrices(ctx, pinned)
	})
	if err != nil {
		return err
	}
	s.purge(asset)
	return nil
}

// UpsertDividends records per-share dividends for a private asset the
// principal owns and drops any cached lookups for it.
func (s *AssetService) UpsertDividends(ctx context.Context, principal uuid.UUID, asset uuid.UUID, observations []models.DividendObservation) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Assets(tx)

		resolved, err := repo.ByID(ctx, asset)
		if err != nil {
			return err
		}
		if !access.AuthorizeAsset(principal, resolved) {
			return fmt.Errorf("%w: asset %s", common.ErrDenied, asset)
		}

		pinned := make([]models.DividendObservation, len(observations))
		copy(pinned, observations)
		for i := range pinned {
			pinned[i].Asset = asset
		}
		return repo.UpsertDividends(ctx, pinned)
	})
	if err != nil {
		return err
	}
	s.purge(asset)
	return nil
}

// PriceAsOf returns the latest price observation on or before the date.
func (s *AssetService) PriceAsOf(ctx context.Context, principal uuid.UUID, asset uuid.UUID, date models.Date) (*models.PriceObservation, error) {
	if err := s.checkReadable(ctx, principal, asset); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("price|%s|%s", asset, date)
	if cached, ok := s.cache.Get(key); ok {
		o := cached.(models.PriceObservation)
		return &o, nil
	}

	o, err := s.repomanager.Assets(s.db).PriceAsOf(ctx, asset, date)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, *o)
	return o, nil
}

// DividendAsOf returns the latest dividend observation on or before the date.
func (s *AssetService) DividendAsOf(ctx context.Context, principal uuid.UUID, asset uuid.UUID, date models.Date) (*models.DividendObservation, error) {
	if err := s.checkReadable(ctx, principal, asset); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("dividend|%s|%s", asset, date)
	if cached, ok := s.cache.Get(key); ok {
		o := cached.(models.DividendObservation)
		return &o, nil
	}

	o, err := s.repomanager.Assets(s.db).DividendAsOf(ctx, asset, date)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, *o)
	return o, nil
}

func (s *AssetService) checkReadable(ctx context.Context, principal uuid.UUID, asset uuid.UUID) error {
	resolved, err := s.repomanager.Assets(s.db).ByID(ctx, asset)
	if err != nil {
		return err
	}
	if !access.Readable(principal, resolved) {
		return fmt.Errorf("%w: asset %s", common.ErrDenied, asset)
	}
	return nil
}

// purge drops every cached lookup for the asset. Observation dates are not
// known here, so the keys are scanned.
func (s *AssetService) purge(asset uuid.UUID) {
	marker := "|" + asset.String() + "|"
	for key := range s.cache.Items() {
		if strings.Contains(key, marker) {
			s.cache.Delete(key)
		}
	}
}
