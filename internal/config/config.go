// Package config reads the server and CLI settings from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	devJWTSecret = "dev-secret-change-me"
)

type Config struct {
	Env      string
	Port     string
	LogDebug bool

	Storage  string
	DB       DBConfig
	Redis    RedisConfig
	Auth     AuthConfig
	AI       AIConfig
	Timezone *time.Location

	RateLimit  int
	RateWindow time.Duration
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	// Enabled is false when REDIS_HOST is empty; caching and rate limiting
	// are then skipped.
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type AIConfig struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	AttemptTimeout time.Duration
	CacheTTL       time.Duration
}

// Load reads .env (if any) and the process environment. Variables already set
// in the environment win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	var errs []error

	cfg := &Config{
		Env:      strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		Port:     getEnv("PORT", "8080"),
		LogDebug: getEnvBool("LOG_DEBUG", false),
		Storage:  strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		DB: DBConfig{
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "habitual"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0, &errs),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			Issuer:    getEnv("JWT_ISSUER", "habitual"),
			TokenTTL:  getEnvDuration("JWT_TTL", 24*time.Hour, &errs),
		},
		AI: AIConfig{
			Provider:       strings.ToLower(getEnv("AI_PROVIDER", "static")),
			Model:          os.Getenv("AI_MODEL"),
			BaseURL:        os.Getenv("AI_BASE_URL"),
			Timeout:        getEnvDuration("AI_TIMEOUT", 30*time.Second, &errs),
			MaxAttempts:    getEnvInt("AI_MAX_ATTEMPTS", 3, &errs),
			AttemptTimeout: getEnvDuration("AI_ATTEMPT_TIMEOUT", 15*time.Second, &errs),
			CacheTTL:       getEnvDuration("MOTIVATION_CACHE_TTL", 24*time.Hour, &errs),
		},
		RateLimit:  getEnvInt("RATE_LIMIT", 100, &errs),
		RateWindow: getEnvDuration("RATE_WINDOW", time.Minute, &errs),
	}
	cfg.Redis.Enabled = cfg.Redis.Host != ""
	cfg.AI.APIKey = aiKey(cfg.AI.Provider)

	tzName := getEnv("HABIT_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		errs = append(errs, fmt.Errorf("HABIT_TIMEZONE: %w", err))
	}
	cfg.Timezone = loc

	switch cfg.Env {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Env))
	}

	switch cfg.Storage {
	case StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage))
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.IsProduction() {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		}
		cfg.Auth.JWTSecret = devJWTSecret
	}

	if cfg.AI.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("AI_MAX_ATTEMPTS must be at least 1, got %d", cfg.AI.MaxAttempts))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// aiKey prefers AI_API_KEY and falls back to the provider's own variable.
func aiKey(provider string) string {
	if key := os.Getenv("AI_API_KEY"); key != "" {
		return key
	}
	switch provider {
	case "gemini":
		return getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY"))
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return value == "yes"
	}
	return b
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, value))
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, value))
		return fallback
	}
	return d
}
