package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/portobook/portobook/internal/models"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first; real environment variables win over
// file entries because godotenv never overwrites existing ones.
//
// Recognized variables:
//
//	DATABASE_PATH         SQLite database file
//	LOG_LEVEL             slog level name
//	HOME_CURRENCY         asset identifier, e.g. "CURRENCY:CAD"
//	LOGIN_ATTEMPT_LIMIT   integer
//	LOGIN_ATTEMPT_WINDOW  Go duration, e.g. "1m"
//	ASSET_SEARCH_LIMIT    integer
//	PRICE_CACHE_TTL       Go duration, e.g. "5m"
func parseEnv(config *Config) error {
	// absence of a .env file is not an error
	_ = godotenv.Load()

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		config.DatabasePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("HOME_CURRENCY"); v != "" {
		id, err := models.ParseAssetID(v)
		if err != nil {
			return fmt.Errorf("HOME_CURRENCY: %w", err)
		}
		config.HomeCurrency = id
	}
	if v := os.Getenv("LOGIN_ATTEMPT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGIN_ATTEMPT_LIMIT: %w", err)
		}
		config.LoginAttemptLimit = n
	}
	if v := os.Getenv("LOGIN_ATTEMPT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LOGIN_ATTEMPT_WINDOW: %w", err)
		}
		config.LoginAttemptWindow = d
	}
	if v := os.Getenv("ASSET_SEARCH_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASSET_SEARCH_LIMIT: %w", err)
		}
		config.AssetSearchLimit = n
	}
	if v := os.Getenv("PRICE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PRICE_CACHE_TTL: %w", err)
		}
		config.PriceCacheTTL = d
	}
	return nil
}
