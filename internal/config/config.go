package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	ListenAddr   string
	LogLevel     string
	DatabaseURL  string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIBase   string
	AuthSecret   string
	SyncWorkers  int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		if _, err := fmt.Sscanf(v, "%d", &out); err == nil {
			return out
		}
	}
	return def
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local runs. Missing optional backends are not fatal; the
// returned error is a warning callers can log and continue past.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:          getenv("APP_ENV", "development"),
		ListenAddr:   getenv("LISTEN_ADDR", ":8080"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getenv("OPENAI_MODEL", ""),
		OpenAIBase:   getenv("OPENAI_BASE_URL", ""),
		AuthSecret:   getenv("AUTH_SECRET", "dev-secret"),
		SyncWorkers:  getenvInt("SYNC_WORKERS", 1),
	}

	var warnings []string
	if cfg.DatabaseURL == "" {
		warnings = append(warnings, "DATABASE_URL not set, projects are memory-only")
	}
	if cfg.OpenAIAPIKey == "" {
		warnings = append(warnings, "OPENAI_API_KEY not set, using the rule-based rewriter")
	}
	if len(warnings) > 0 {
		return cfg, fmt.Errorf("%s", strings.Join(warnings, "; "))
	}
	return cfg, nil
}

// Validate reports hard misconfiguration. Listing every problem at once
// beats failing on the first.
func (c Config) Validate() error {
	var problems []string
	switch c.Env {
	case "development", "staging", "production":
	default:
		problems = append(problems, fmt.Sprintf("invalid APP_ENV %q", c.Env))
	}
	if c.ListenAddr == "" {
		problems = append(problems, "LISTEN_ADDR must not be empty")
	}
	if c.SyncWorkers < 0 {
		problems = append(problems, fmt.Sprintf("SYNC_WORKERS must not be negative, got %d", c.SyncWorkers))
	}
	if c.Env == "production" && c.AuthSecret == "dev-secret" {
		problems = append(problems, "AUTH_SECRET must be set in production")
	}
	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}
