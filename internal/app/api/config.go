package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
	"golang.org/x/text/language"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	RunMigrations     bool
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	UserCacheTTL      time.Duration
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	DefaultLocale     language.Tag
	Environment       string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RunMigrations:     isTruthy(os.Getenv("RUN_MIGRATIONS")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		UserCacheTTL:      5 * time.Minute,
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		DefaultLocale:     language.English,
		Environment:       envDefault("ENVIRONMENT", "local"),
	}
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return Config{}, fmt.Errorf("REDIS_DB must be a non-negative integer")
		}
		cfg.RedisDB = db
	}
	if raw := strings.TrimSpace(os.Getenv("USER_CACHE_TTL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("USER_CACHE_TTL_SECONDS must be a positive integer")
		}
		cfg.UserCacheTTL = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("DEFAULT_LOCALE")); raw != "" {
		tag, err := language.Parse(raw)
		if err != nil {
			return Config{}, fmt.Errorf("DEFAULT_LOCALE %q: %w", raw, err)
		}
		cfg.DefaultLocale = tag
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
