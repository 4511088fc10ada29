package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/portobook/portobook/internal/common"
	"github.com/shopspring/decimal"
)

// Value is one monetary quantity: an amount denominated in an asset.
type Value struct {
	Amount decimal.Decimal `json:"amount"`
	Asset  AssetID         `json:"asset"`
}

// Role names the position a leg occupies inside an action.
type Role string

const (
	RoleValue  Role = "value"
	RoleFee    Role = "fee"
	RoleAsset  Role = "asset"
	RoleCash   Role = "cash"
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

// Leg is one monetary component of an action, exposed for rule evaluation so
// that policy code does not need a case-by-case switch over action kinds.
// Source and target legs of a Journal (and the source of a Dividend) carry a
// zero amount: they name an asset, not a quantity.
type Leg struct {
	Amount decimal.Decimal
	Asset  AssetID
	Role   Role
}

// Action is one case of the closed transaction-action taxonomy. The dynamic
// type determines the wire tag; adding a case means adding a struct here and
// registering it in actionTypes.
type Action interface {
	Kind() string
	Legs() []Leg
}

// Deposit is an external cash movement into the account.
type Deposit struct {
	Value Value `json:"value"`
	Fee   Value `json:"fee"`
}

func (Deposit) Kind() string { return "Deposit" }
func (a Deposit) Legs() []Leg {
	return []Leg{
		{Amount: a.Value.Amount, Asset: a.Value.Asset, Role: RoleValue},
		{Amount: a.Fee.Amount, Asset: a.Fee.Asset, Role: RoleFee},
	}
}

// Withdrawal is an external cash movement out of the account.
type Withdrawal struct {
	Value Value `json:"value"`
	Fee   Value `json:"fee"`
}

func (Withdrawal) Kind() string { return "Withdrawal" }
func (a Withdrawal) Legs() []Leg {
	return []Leg{
		{Amount: a.Value.Amount, Asset: a.Value.Asset, Role: RoleValue},
		{Amount: a.Fee.Amount, Asset: a.Fee.Asset, Role: RoleFee},
	}
}

// Income is a ledger entry for value received without a cash movement.
type Income struct {
	Value  Value  `json:"value"`
	Reason string `json:"reason"`
}

func (Income) Kind() string { return "Income" }
func (a Income) Legs() []Leg {
	return []Leg{{Amount: a.Value.Amount, Asset: a.Value.Asset, Role: RoleValue}}
}

// Fee is a ledger entry for value charged without a cash movement.
type Fee struct {
	Value  Value  `json:"value"`
	Reason string `json:"reason"`
}

func (Fee) Kind() string { return "Fee" }
func (a Fee) Legs() []Leg {
	return []Leg{{Amount: a.Value.Amount, Asset: a.Value.Asset, Role: RoleValue}}
}

// Buy exchanges cash for an asset.
type Buy struct {
	Asset Value `json:"asset"`
	Cash  Value `json:"cash"`
	Fee   Value `json:"fee"`
}

func (Buy) Kind() string { return "Buy" }
func (a Buy) Legs() []Leg {
	return []Leg{
		{Amount: a.Asset.Amount, Asset: a.Asset.Asset, Role: RoleAsset},
		{Amount: a.Cash.Amount, Asset: a.Cash.Asset, Role: RoleCash},
		{Amount: a.Fee.Amount, Asset: a.Fee.Asset, Role: RoleFee},
	}
}

// Sell exchanges an asset for cash.
type Sell struct {
	Asset Value `json:"asset"`
	Cash  Value `json:"cash"`
	Fee   Value `json:"fee"`
}

func (Sell) Kind() string { return "Sell" }
func (a Sell) Legs() []Leg {
	return []Leg{
		{Amount: a.Asset.Amount, Asset: a.Asset.Asset, Role: RoleAsset},
		{Amount: a.Cash.Amount, Asset: a.Cash.Asset, Role: RoleCash},
		{Amount: a.Fee.Amount, Asset: a.Fee.Asset, Role: RoleFee},
	}
}

// Dividend records value paid out by a source asset.
type Dividend struct {
	Source AssetID `json:"source"`
	Value  Value   `json:"value"`
	Fee    Value   `json:"fee"`
}

func (Dividend) Kind() string { return "Dividend" }
func (a Dividend) Legs() []Leg {
	return []Leg{
		{Asset: a.Source, Role: RoleSource},
		{Amount: a.Value.Amount, Asset: a.Value.Asset, Role: RoleValue},
		{Amount: a.Fee.Amount, Asset: a.Fee.Asset, Role: RoleFee},
	}
}

// Journal reclassifies a position from one asset identity to another with no
// net value leg, plus a fee.
type Journal struct {
	Source AssetID `json:"source"`
	Target AssetID `json:"target"`
	Fee    Value   `json:"fee"`
}

func (Journal) Kind() string { return "Journal" }
func (a Journal) Legs() []Leg {
	return []Leg{
		{Asset: a.Source, Role: RoleSource},
		{Asset: a.Target, Role: RoleTarget},
		{Amount: a.Fee.Amount, Asset: a.Fee.Asset, Role: RoleFee},
	}
}

// actionTypes maps wire tags to empty payloads for deserialization. The tag
// is the exact kind name; an unrecognized tag fails loudly.
var actionTypes = map[string]func() Action{
	"Deposit":    func() Action { return &Deposit{} },
	"Withdrawal": func() Action { return &Withdrawal{} },
	"Income":     func() Action { return &Income{} },
	"Fee":        func() Action { return &Fee{} },
	"Buy":        func() Action { return &Buy{} },
	"Sell":       func() Action { return &Sell{} },
	"Dividend":   func() Action { return &Dividend{} },
	"Journal":    func() Action { return &Journal{} },
}

// TxnAction wraps an Action for serialization. The JSON form is the payload
// object with an extra "type" field carrying the kind tag:
//
//	{"type":"Deposit","value":{"amount":"100","asset":"CURRENCY:CAD"},...}
//
// The database stores the same JSON text, so old rows survive the addition
// of new action cases.
type TxnAction struct {
	Action
}

// NewTxnAction wraps a concrete action payload.
func NewTxnAction(a Action) TxnAction { return TxnAction{Action: a} }

func (a TxnAction) MarshalJSON() ([]byte, error) {
	if a.Action == nil {
		return nil, fmt.Errorf("%w: empty transaction action", common.ErrParse)
	}
	payload, err := json.Marshal(a.Action)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	fields["type"], err = json.Marshal(a.Action.Kind())
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func (a *TxnAction) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("%w: malformed transaction action: %v", common.ErrParse, err)
	}
	newAction, ok := actionTypes[envelope.Type]
	if !ok {
		return fmt.Errorf("%w: unknown action type %q", common.ErrParse, envelope.Type)
	}
	action := newAction()
	if err := json.Unmarshal(data, action); err != nil {
		return fmt.Errorf("%w: malformed %s action: %v", common.ErrParse, envelope.Type, err)
	}
	a.Action = deref(action)
	return nil
}

// deref unwraps the pointer produced by actionTypes so that TxnAction always
// holds value payloads regardless of how it was built.
func deref(a Action) Action {
	switch v := a.(type) {
	case *Deposit:
		return *v
	case *Withdrawal:
		return *v
	case *Income:
		return *v
	case *Fee:
		return *v
	case *Buy:
		return *v
	case *Sell:
		return *v
	case *Dividend:
		return *v
	case *Journal:
		return *v
	default:
		return a
	}
}

// Value implements driver.Valuer; the database stores the JSON text.
func (a TxnAction) Value() (driver.Value, error) {
	data, err := a.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for TEXT columns.
func (a *TxnAction) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return a.UnmarshalJSON([]byte(v))
	case []byte:
		return a.UnmarshalJSON(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into TxnAction", common.ErrParse, src)
	}
}
