// Command migrate applies the database schema and verifies the services
// come up against it.
package main

import (
	"context"
	"log"

	"github.com/portobook/portobook/internal/server"
	"github.com/portobook/portobook/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Logger.Info(ctx, "schema up to date", "database", cfg.DatabasePath)
}
