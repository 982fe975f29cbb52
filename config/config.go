// Package config loads runtime configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything needed to run the server.
type Config struct {
	Port     int    // HTTP server port
	DBPath   string // SQLite database path, ":memory:" for in-memory
	LogLevel string // logrus level: debug, info, warn, error
	LogJSON  bool   // JSON log output instead of text

	// ApproverIDs receive notifications when a mission reaches approbation.
	ApproverIDs []string
}

// Load reads .env (if present) and the process environment.
// Missing variables fall back to development defaults.
func Load() Config {
	// Ignore a missing .env file; the environment may be set directly.
	_ = godotenv.Load()

	return Config{
		Port:        envInt("PORT", 8080),
		DBPath:      envStr("DB_PATH", "workforce.db"),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		LogJSON:     envBool("LOG_JSON", false),
		ApproverIDs: envList("APPROVER_IDS"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
