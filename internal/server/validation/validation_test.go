package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/portobook/portobook/internal/common"
	"github.com/portobook/portobook/internal/models"
)

var cad = models.Currency("CAD")

func value(amount int64, asset models.AssetID) models.Value {
	return models.Value{Amount: decimal.NewFromInt(amount), Asset: asset}
}

func txnWith(action models.Action) *models.Transaction {
	return &models.Transaction{
		Account: uuid.New(),
		Date:    models.NewDate(2024, 3, 15),
		Action:  models.NewTxnAction(action),
	}
}

func TestCheckTransaction_NoAccount(t *testing.T) {
	txn := txnWith(models.Deposit{Value: value(100, cad), Fee: value(0, cad)})
	err := CheckTransaction(cad, nil, txn)
	require.ErrorIs(t, err, common.ErrReference)
}

func TestCheckTransaction_RegisteredAccountPolicy(t *testing.T) {
	registered := &models.Account{ID: uuid.New(), Name: "My TFSA", Alias: "tfsa", Kind: models.KindTFSA}
	ordinary := &models.Account{ID: uuid.New(), Name: "Margin Acc", Alias: "marg", Kind: models.KindNRA}
	btc := models.Crypto("BTC")

	cases := []struct {
		name    string
		account *models.Account
		action  models.Action
		wantErr error
	}{
		{"cad deposit into tfsa", registered, models.Deposit{Value: value(100, cad), Fee: value(0, cad)}, nil},
		{"btc deposit into tfsa", registered, models.Deposit{Value: value(1, btc), Fee: value(0, cad)}, common.ErrPolicy},
		{"btc withdrawal from tfsa", registered, models.Withdrawal{Value: value(1, btc), Fee: value(0, cad)}, common.ErrPolicy},
		{"btc deposit into nra", ordinary, models.Deposit{Value: value(1, btc), Fee: value(0, cad)}, nil},
		// only deposits and withdrawals count as contributions
		{"buy btc inside tfsa", registered, models.Buy{
			Asset: value(1, btc), Cash: value(100, cad), Fee: value(0, cad),
		}, nil},
		{"usd income inside rrsp", &models.Account{Kind: models.KindRRSP},
			models.Income{Value: value(10, models.Currency("USD"))}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTransaction(cad, tc.account, txnWith(tc.action))
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCheckTransaction_MissingAction(t *testing.T) {
	account := &models.Account{ID: uuid.New(), Kind: models.KindNRA}
	err := CheckTransaction(cad, account, &models.Transaction{Account: account.ID})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestCheckAccount(t *testing.T) {
	valid := models.Account{Name: "Main Broker", Alias: "main", Kind: models.KindNRA}
	require.NoError(t, CheckAccount(&valid))

	shortName := valid
	shortName.Name = "abc"
	require.ErrorIs(t, CheckAccount(&shortName), common.ErrValidation)

	shortAlias := valid
	shortAlias.Alias = "ab"
	require.ErrorIs(t, CheckAccount(&shortAlias), common.ErrValidation)

	badKind := valid
	badKind.Kind = "401K"
	require.ErrorIs(t, CheckAccount(&badKind), common.ErrValidation)
}

func TestCheckRegistration(t *testing.T) {
	require.NoError(t, CheckRegistration("alice123", "correcthorse"))
	require.ErrorIs(t, CheckRegistration("alice", "correcthorse"), common.ErrValidation)
	require.ErrorIs(t, CheckRegistration("alice123", "short"), common.ErrValidation)
}
