package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/portobook/portobook/internal/common"
)

// AccountKind is the closed enumeration of account types. NRA is the
// unregistered (taxable) kind; the other three are registered accounts
// subject to the home-currency cash-movement restriction.
type AccountKind string

const (
	KindNRA  AccountKind = "NRA"
	KindTFSA AccountKind = "TFSA"
	KindRRSP AccountKind = "RRSP"
	KindFHSA AccountKind = "FHSA"
)

// Valid reports whether k is a member of the enumeration.
func (k AccountKind) Valid() bool {
	switch k {
	case KindNRA, KindTFSA, KindRRSP, KindFHSA:
		return true
	}
	return false
}

// Registered reports whether k is a registered (tax-advantaged) kind.
func (k AccountKind) Registered() bool {
	switch k {
	case KindTFSA, KindRRSP, KindFHSA:
		return true
	}
	return false
}

func (k *AccountKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: account kind must be a string", common.ErrParse)
	}
	kind := AccountKind(s)
	if !kind.Valid() {
		return fmt.Errorf("%w: %q is not a valid account kind", common.ErrParse, s)
	}
	*k = kind
	return nil
}

// Value implements driver.Valuer.
func (k AccountKind) Value() (driver.Value, error) {
	return string(k), nil
}

// Scan implements sql.Scanner, rejecting values outside the enumeration.
func (k *AccountKind) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into AccountKind", common.ErrParse, src)
	}
	kind := AccountKind(s)
	if !kind.Valid() {
		return fmt.Errorf("%w: %q is not a valid account kind", common.ErrParse, s)
	}
	*k = kind
	return nil
}

// Account is a container of transactions owned by a user. Identity is the id
// alone; two accounts with identical fields but different ids are distinct.
// An omitted id deserializes to uuid.Nil, meaning "not yet persisted".
type Account struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Alias string      `json:"alias"`
	Owner uuid.UUID   `json:"owner"`
	Kind  AccountKind `json:"kind"`
}
