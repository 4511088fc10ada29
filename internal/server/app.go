// Package server assembles the bookkeeping backend: it opens the database,
// applies migrations and wires the services together. Transport is left to
// the embedding application, which talks to the services directly.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/portobook/portobook/internal/dbx"
	"github.com/portobook/portobook/internal/logging"
	"github.com/portobook/portobook/internal/server/auth"
	"github.com/portobook/portobook/internal/server/config"
	"github.com/portobook/portobook/internal/server/repositories/repomanager"
	"github.com/portobook/portobook/internal/server/services"
)

type App struct {
	Config *config.Config
	Logger logging.Logger
	Users  *services.UserService
	Ledger *services.LedgerService
	Assets *services.AssetService

	db *sql.DB
}

func newLogger(level string) logging.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
	return logging.NewSlogLogger(slog.New(h))
}

// NewApp opens the database, applies pending migrations and wires the
// services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := newLogger(cfg.LogLevel)

	db, err := dbx.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLiteRepositoryManager()
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	logger.Info(ctx, "database ready", "path", cfg.DatabasePath)

	return &App{
		Config: cfg,
		Logger: logger,
		Users:  services.NewUserService(db, rm, auth.NewBcryptHasher(), cfg),
		Ledger: services.NewLedgerService(db, rm, cfg),
		Assets: services.NewAssetService(db, rm, cfg),
		db:     db,
	}, nil
}

// Close releases the database connection.
func (app *App) Close() error {
	return app.db.Close()
}
