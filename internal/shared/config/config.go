package config

import (
	"os"
	"strconv"
	"strings"

	"resume-quality/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	DatabaseURL      string
	CORSAllowOrigin  []string
	QualityThreshold int
	MaxDocumentBytes int
	RateLimitRPS     float64
	RateLimitBurst   int
	BatchConcurrency int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		QualityThreshold: getEnvInt("QUALITY_THRESHOLD", 70),
		MaxDocumentBytes: getEnvInt("MAX_DOCUMENT_BYTES", 512*1024),
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 20),
		BatchConcurrency: getEnvInt("ANALYZE_BATCH_CONCURRENCY", 4),
	}
	// Zero means "unset" to the scoring service, so the usable range starts at 1.
	if cfg.QualityThreshold < 1 || cfg.QualityThreshold > 100 {
		telemetry.Warn("config.invalid_threshold", map[string]any{"value": cfg.QualityThreshold})
		cfg.QualityThreshold = 70
	}
	if env == "production" && cfg.DatabaseURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}
	return cfg
}

// MaxBodyBytes bounds request bodies: JSON batches carry several documents and
// uploads carry binary formats larger than their text.
func (c Config) MaxBodyBytes() int64 {
	return int64(c.MaxDocumentBytes) * 8
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
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
