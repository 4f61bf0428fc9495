package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestRunMigrationsNilDatabase(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected nil database to be a no-op, got %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	want := []string{
		"migrations/00001_create_resumes.sql",
		"migrations/00002_create_documents.sql",
		"migrations/00003_create_exports.sql",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("migrations = %v, want %v", names, want)
	}
	for _, name := range names {
		raw, err := fs.ReadFile(migrationFiles, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		body := string(raw)
		if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
			t.Fatalf("%s is missing goose annotations", name)
		}
	}
}
