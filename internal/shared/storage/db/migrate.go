package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"resume-builder/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var gooseOnce sync.Once

// gooseLogger routes goose output through telemetry.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	telemetry.Info("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	telemetry.Error("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

func setupGoose() error {
	var err error
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrationFiles)
		goose.SetLogger(gooseLogger{})
		err = goose.SetDialect("postgres")
	})
	return err
}

// RunMigrations applies the embedded resumes, documents and exports migrations.
// A nil database is a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, database)
	if err != nil {
		return fmt.Errorf("migrate version: %w", err)
	}
	telemetry.Info("db.migrate_done", map[string]any{"version": version})
	return nil
}
