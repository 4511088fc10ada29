package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset is the metadata row for an instrument: its AssetID, a display name,
// and an optional owner. Assets without an owner are visible to every user;
// owned assets are visible only to their owner. (AssetID, owner) is unique,
// so the same instrument may exist once globally and once per user.
type Asset struct {
	ID      uuid.UUID  `json:"id"`
	AssetID AssetID    `json:"asset_id"`
	Name    string     `json:"name"`
	Owner   *uuid.UUID `json:"owner,omitempty"`
}

// PriceObservation is one dated price point of an asset, denominated in a
// currency. Observations are keyed by (asset, date): a second write for the
// same date replaces the first, regardless of currency.
type PriceObservation struct {
	Asset    uuid.UUID       `json:"asset"`
	Date     Date            `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Currency AssetID         `json:"currency"`
}

// DividendObservation is one dated dividend payout of an asset. Storage and
// lookup mirror PriceObservation exactly, in a separate table.
type DividendObservation struct {
	Asset    uuid.UUID       `json:"asset"`
	Date     Date            `json:"date"`
	Dividend decimal.Decimal `json:"dividend"`
	Currency AssetID         `json:"currency"`
}
