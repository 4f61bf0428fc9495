package config

import (
	"os"
	"strconv"
	"strings"

	"resume-builder/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	DatabaseURL string
	RedisURL    string

	LLMProvider  string
	LLMModel     string
	OpenAIAPIKey string

	ChromePDF     bool
	RateLimitRPM  int
	MaxUploadSize int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:     dbURL,
		RedisURL:        getEnv("REDIS_URL", ""),
		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "none")),
		LLMModel:        getEnv("LLM_MODEL", "gpt-5-mini"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		ChromePDF:       getBool("CHROME_PDF", false),
		RateLimitRPM:    getInt("RATE_LIMIT_RPM", 120),
		MaxUploadSize:   int64(getInt("MAX_UPLOAD_MB", 10)) << 20,
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "error": err})
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		telemetry.Warn("config.invalid_bool", map[string]any{"key": key, "error": err})
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
