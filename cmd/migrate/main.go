package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		telemetry.Error("migrate.database_url_missing", nil)
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}
