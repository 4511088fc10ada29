package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/portobook/portobook/internal/models"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   SQLite database file
//	-l string   log level (debug, info, warn, error)
//	-c string   home currency asset identifier, e.g. "CURRENCY:CAD"
//	-w int      login throttle window, seconds
func parseFlags(config *Config) error {
	fs := flag.NewFlagSet("portobook", flag.ContinueOnError)

	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "database file path")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	home := fs.String("c", config.HomeCurrency.String(), "home currency")
	window := fs.Int("w", int(config.LoginAttemptWindow.Seconds()), "login throttle window (in seconds)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	id, err := models.ParseAssetID(*home)
	if err != nil {
		return fmt.Errorf("-c: %w", err)
	}
	config.HomeCurrency = id
	config.LoginAttemptWindow = time.Duration(*window) * time.Second
	return nil
}
