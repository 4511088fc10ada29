package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/portobook/portobook/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "portobook.db", cfg.DatabasePath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, models.Currency("CAD"), cfg.HomeCurrency)
	require.Equal(t, 3, cfg.LoginAttemptLimit)
	require.Equal(t, time.Minute, cfg.LoginAttemptWindow)
	require.Equal(t, 10, cfg.AssetSearchLimit)
	require.Equal(t, 5*time.Minute, cfg.PriceCacheTTL)
}

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/ledger.db")
	t.Setenv("HOME_CURRENCY", "CURRENCY:USD")
	t.Setenv("LOGIN_ATTEMPT_LIMIT", "5")
	t.Setenv("LOGIN_ATTEMPT_WINDOW", "90s")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	require.Equal(t, "/tmp/ledger.db", cfg.DatabasePath)
	require.Equal(t, models.Currency("USD"), cfg.HomeCurrency)
	require.Equal(t, 5, cfg.LoginAttemptLimit)
	require.Equal(t, 90*time.Second, cfg.LoginAttemptWindow)
	// untouched fields keep their defaults
	require.Equal(t, 10, cfg.AssetSearchLimit)
}

func TestParseEnv_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"HOME_CURRENCY":       "not-an-asset",
		"LOGIN_ATTEMPT_LIMIT": "many",
		"PRICE_CACHE_TTL":     "soon",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			cfg := &Config{}
			cfg.LoadDefaults()
			require.Error(t, parseEnv(cfg))
		})
	}
}
