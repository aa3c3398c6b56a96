package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only DATABASE_URL is required.
type Config struct {
	// Deployment environment name, e.g. localdev, dev, test, minishift, prod.
	Environment string `validate:"required"`

	// Server
	HTTPPort        string        `validate:"required,numeric"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Database
	DatabaseURL   string `validate:"required,url"`
	DBMaxConns    int32  `validate:"gte=1"`
	DBMinConns    int32  `validate:"gte=0,ltefield=DBMaxConns"`
	MigrationsDir string `validate:"required"`

	// Sessions
	RedisURL            string        `validate:"required,url"`
	SessionCookieName   string        `validate:"required"`
	SessionTTL          time.Duration `validate:"gt=0"`
	SessionCookieSecure bool

	// Trusted SiteMinder headers
	AuthHeader        string `validate:"required"`
	DisplayNameHeader string

	// Requests per second per client on the debug routes
	DebugRateLimit int `validate:"gte=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "prod"),

		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL:   dbURL,
		DBMaxConns:    int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getInt("DB_MIN_CONNS", 2)),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "sessionid"),
		SessionTTL:          getDuration("SESSION_TTL", 20*time.Minute),
		SessionCookieSecure: getBool("SESSION_COOKIE_SECURE", false),

		AuthHeader:        getEnv("AUTH_HEADER", "SMGOV_USERGUID"),
		DisplayNameHeader: getEnv("DISPLAY_NAME_HEADER", "SMGOV_USERDISPLAYNAME"),

		DebugRateLimit: getInt("DEBUG_RATE_LIMIT", 5),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
