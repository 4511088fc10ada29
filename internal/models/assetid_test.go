package models

import (
	"encoding/json"
	"testing"

	"github.com/portobook/portobook/internal/common"
	"github.com/stretchr/testify/require"
)

func TestAssetID_RoundTrip(t *testing.T) {
	tests := []struct {
		id   AssetID
		text string
	}{
		{Currency("USD"), "CURRENCY:USD"},
		{Currency("CAD"), "CURRENCY:CAD"},
		{Crypto("BTC"), "CRYPTO:BTC"},
		{Stock("TSE", "DLR"), "XTSE:DLR"},
		{Stock("NYSE", "BRK.B"), "XNYSE:BRK.B"},
		{UnknownAsset("TDB627"), "UNKNOWN:TDB627"},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			require.Equal(t, tc.text, tc.id.String())

			parsed, err := ParseAssetID(tc.id.String())
			require.NoError(t, err)
			require.Equal(t, tc.id, parsed)
		})
	}
}

func TestParseAssetID_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no separator", "CAD"},
		{"empty", ""},
		{"empty exchange", "X:DLR"},
		{"unrecognized tag", "FOO:BAR"},
		{"lowercase tag", "currency:CAD"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAssetID(tc.input)
			require.ErrorIs(t, err, common.ErrParse)
		})
	}
}

func TestParseAssetID_SymbolMayContainColon(t *testing.T) {
	// Only the first ':' separates the tag; the remainder is the symbol.
	parsed, err := ParseAssetID("UNKNOWN:A:B")
	require.NoError(t, err)
	require.Equal(t, UnknownAsset("A:B"), parsed)
}

func TestAssetID_JSON(t *testing.T) {
	data, err := json.Marshal(Stock("TSE", "DLR"))
	require.NoError(t, err)
	require.JSONEq(t, `"XTSE:DLR"`, string(data))

	var id AssetID
	require.NoError(t, json.Unmarshal([]byte(`"CURRENCY:CAD"`), &id))
	require.Equal(t, Currency("CAD"), id)

	err = json.Unmarshal([]byte(`"BOGUS:CAD"`), &id)
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrParse)
}

func TestAssetID_ScanValue(t *testing.T) {
	v, err := Crypto("ETH").Value()
	require.NoError(t, err)
	require.Equal(t, "CRYPTO:ETH", v)

	var id AssetID
	require.NoError(t, id.Scan("XTSE:DLR"))
	require.Equal(t, Stock("TSE", "DLR"), id)

	require.Error(t, id.Scan(42))
}
