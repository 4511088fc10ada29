// Package models defines the ledger entities persisted in the database and
// exchanged as JSON request/response bodies: users, accounts, assets,
// transactions and their action payloads, and price/dividend observations.
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/portobook/portobook/internal/common"
)

// AssetClass distinguishes the supported instrument categories.
type AssetClass uint8

const (
	ClassStock AssetClass = iota
	ClassCurrency
	ClassCrypto
	ClassUnknown
)

// AssetID is a tagged identifier for a tradable or monetary instrument.
// Its text form is "<TAG>:<symbol>", where the tag of a stock is "X" followed
// by the exchange code: "XTSE:DLR", "CURRENCY:CAD", "CRYPTO:BTC",
// "UNKNOWN:TDB627". Equality is structural, so AssetID values are comparable
// and usable as map keys.
type AssetID struct {
	Class    AssetClass
	Exchange string // set only for ClassStock
	Symbol   string
}

// Stock identifies anything tradable through a stock exchange.
func Stock(exchange, ticker string) AssetID {
	return AssetID{Class: ClassStock, Exchange: exchange, Symbol: ticker}
}

// Currency identifies a fiat currency by its symbol, e.g. "CAD".
func Currency(symbol string) AssetID {
	return AssetID{Class: ClassCurrency, Symbol: symbol}
}

// Crypto identifies a crypto currency by its symbol, e.g. "BTC".
func Crypto(symbol string) AssetID {
	return AssetID{Class: ClassCrypto, Symbol: symbol}
}

// UnknownAsset identifies an instrument outside the other categories.
func UnknownAsset(symbol string) AssetID {
	return AssetID{Class: ClassUnknown, Symbol: symbol}
}

// ParseAssetID parses the text form of an AssetID. The tag must be one of
// CURRENCY, CRYPTO, UNKNOWN, or X<exchange> with a non-empty exchange;
// anything else is an error, never silently coerced.
func ParseAssetID(s string) (AssetID, error) {
	tag, symbol, ok := strings.Cut(s, ":")
	if !ok {
		return AssetID{}, fmt.Errorf("%w: asset id %q has no tag separator", common.ErrParse, s)
	}
	switch tag {
	case "CURRENCY":
		return Currency(symbol), nil
	case "CRYPTO":
		return Crypto(symbol), nil
	case "UNKNOWN":
		return UnknownAsset(symbol), nil
	}
	if len(tag) > 1 && tag[0] == 'X' {
		return Stock(tag[1:], symbol), nil
	}
	return AssetID{}, fmt.Errorf("%w: unknown asset tag %q", common.ErrParse, tag)
}

// String renders the text form. It is the inverse of ParseAssetID for every
// value built through the constructors.
func (a AssetID) String() string {
	switch a.Class {
	case ClassCurrency:
		return "CURRENCY:" + a.Symbol
	case ClassCrypto:
		return "CRYPTO:" + a.Symbol
	case ClassUnknown:
		return "UNKNOWN:" + a.Symbol
	default:
		return "X" + a.Exchange + ":" + a.Symbol
	}
}

// IsZero reports whether a is the zero AssetID.
func (a AssetID) IsZero() bool {
	return a == AssetID{}
}

func (a AssetID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AssetID) UnmarshalText(text []byte) error {
	id, err := ParseAssetID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// Value implements driver.Valuer; the database stores the text form.
func (a AssetID) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner for TEXT columns.
func (a *AssetID) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return a.UnmarshalText([]byte(v))
	case []byte:
		return a.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into AssetID", common.ErrParse, src)
	}
}
