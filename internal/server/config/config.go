// Package config handles configuration for the server component,
// including defaults, environment overlay (.env aware), and command-line
// flags.
package config

import (
	"time"

	"github.com/portobook/portobook/internal/models"
)

// Config holds runtime settings for the bookkeeping server.
//
// Fields:
//   - DatabasePath: filesystem path of the SQLite database.
//   - LogLevel: slog level name (debug, info, warn, error).
//   - HomeCurrency: currency registered accounts must be funded in.
//   - LoginAttemptLimit / LoginAttemptWindow: failed-login throttle.
//   - AssetSearchLimit: maximum rows returned by asset search.
//   - PriceCacheTTL: lifetime of cached price and dividend lookups.
type Config struct {
	DatabasePath       string
	LogLevel           string
	HomeCurrency       models.AssetID
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
	AssetSearchLimit   int
	PriceCacheTTL      time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "portobook.db"
	c.LogLevel = "info"
	c.HomeCurrency = models.Currency("CAD")
	c.LoginAttemptLimit = 3
	c.LoginAttemptWindow = 1 * time.Minute
	c.AssetSearchLimit = 10
	c.PriceCacheTTL = 5 * time.Minute
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including a .env file if present) and finally from
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
