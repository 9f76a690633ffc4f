package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL         string
	Port                string
	IsProduction        bool
	EnableDBCheck       bool
	DBConnectRetries    int
	DBConnectRetryDelay time.Duration
	MigrationsPath      string

	// Participants is the open set of people who drive and pay.
	Participants []string

	// Settlement cache, disabled when RedisAddr is empty
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	SettlementCacheTTL time.Duration

	RateLimit          string // ulule formatted, e.g. "300-M"
	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

const (
	defaultPort                = "3001"
	defaultDBConnectRetries    = 5
	defaultDBConnectRetryDelay = 5 * time.Second
	defaultSettlementCacheTTL  = 30 * time.Second
)

// ErrTooFewParticipants is returned when fewer than two participants are configured.
var ErrTooFewParticipants = errors.New("PARTICIPANTS must name at least two people")

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("DB_CONNECT_RETRIES", defaultDBConnectRetries)
	v.SetDefault("DB_CONNECT_RETRY_DELAY", defaultDBConnectRetryDelay.String())
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("PARTICIPANTS", "Anne,Bram")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SETTLEMENT_CACHE_TTL", defaultSettlementCacheTTL.String())
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      v.GetString("PGSQL_URL"),
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		DBConnectRetries: v.GetInt("DB_CONNECT_RETRIES"),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		RateLimit:        v.GetString("RATE_LIMIT"),
		PosthogAPIKey:    v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
		slog.Warn("PORT environment variable not set", slog.String("default", cfg.Port))
	}
	if cfg.DBConnectRetries < 1 {
		cfg.DBConnectRetries = 1
	}

	cfg.DBConnectRetryDelay = durationOrDefault(v.GetString("DB_CONNECT_RETRY_DELAY"), "DB_CONNECT_RETRY_DELAY", defaultDBConnectRetryDelay)
	cfg.SettlementCacheTTL = durationOrDefault(v.GetString("SETTLEMENT_CACHE_TTL"), "SETTLEMENT_CACHE_TTL", defaultSettlementCacheTTL)

	cfg.Participants = splitList(v.GetString("PARTICIPANTS"))
	if len(cfg.Participants) < 2 {
		return nil, fmt.Errorf("%w: got %q", ErrTooFewParticipants, v.GetString("PARTICIPANTS"))
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

func durationOrDefault(raw, key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			slog.Warn("Invalid duration, using default", slog.String("key", key), slog.String("value", raw), slog.String("default", def.String()))
		}
		return def
	}
	return d
}

// splitList splits a comma separated value, dropping blanks and duplicates.
func splitList(raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
