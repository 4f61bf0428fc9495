package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"resume-builder/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE files for local development. Existing
// environment variables take precedence and missing files are skipped.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			telemetry.Warn("config.env_file_invalid", map[string]any{"path": path, "error": err})
		}
	}
}
