// Package config loads the server configuration from the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/celestiaorg/taskboard/internal/constants"
)

// Defaults applied when the environment does not say otherwise
const (
	DefaultListenAddr   = ":8080"
	DefaultDatabaseURL  = "taskboard.db"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultSessionStore = SessionStoreMemory
	DefaultSessionTTL   = 24 * time.Hour
	DefaultRedisAddr    = "localhost:6379"
	DefaultAdminName    = "Admin"
)

// Session storage backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// ErrMissingSecretKey is returned when SECRET_KEY is not set
var ErrMissingSecretKey = errors.New("SECRET_KEY must be set")

// Config holds everything the server needs at startup
type Config struct {
	ListenAddr  string
	SecretKey   string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	GuestEmail  string
	Session     SessionConfig
	Admin       AdminConfig
}

// SessionConfig configures server-side sessions
type SessionConfig struct {
	Store         string
	TTL           time.Duration
	CookieSecure  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// AdminConfig describes the administrator account created on an empty database.
// An empty Email disables the bootstrap.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Enabled reports whether an administrator account should be bootstrapped
func (a AdminConfig) Enabled() bool {
	return a.Email != ""
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load reads the configuration from the environment and validates it
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:  GetEnv(constants.EnvListenAddr, DefaultListenAddr),
		SecretKey:   os.Getenv(constants.EnvSecretKey),
		DatabaseURL: GetEnv(constants.EnvDatabaseURL, DefaultDatabaseURL),
		LogLevel:    GetEnv(constants.EnvLogLevel, DefaultLogLevel),
		LogFormat:   GetEnv(constants.EnvLogFormat, DefaultLogFormat),
		GuestEmail:  GetEnv(constants.EnvGuestEmail, constants.DefaultGuestEmail),
		Session: SessionConfig{
			Store:         strings.ToLower(GetEnv(constants.EnvSessionStore, DefaultSessionStore)),
			TTL:           DefaultSessionTTL,
			RedisAddr:     GetEnv(constants.EnvRedisAddr, DefaultRedisAddr),
			RedisPassword: os.Getenv(constants.EnvRedisPass),
		},
		Admin: AdminConfig{
			Email:    strings.TrimSpace(os.Getenv(constants.EnvAdminEmail)),
			Password: os.Getenv(constants.EnvAdminPassword),
			Name:     GetEnv(constants.EnvAdminName, DefaultAdminName),
		},
	}

	if raw := os.Getenv(constants.EnvSessionTTL); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", constants.EnvSessionTTL, raw, err)
		}
		cfg.Session.TTL = ttl
	}

	if raw := os.Getenv(constants.EnvCookieSecure); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", constants.EnvCookieSecure, raw, err)
		}
		cfg.Session.CookieSecure = secure
	}

	if raw := os.Getenv(constants.EnvRedisDB); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", constants.EnvRedisDB, raw, err)
		}
		cfg.Session.RedisDB = db
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot start without
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	if c.Admin.Enabled() && c.Admin.Password == "" {
		return fmt.Errorf("%s is required when %s is set", constants.EnvAdminPassword, constants.EnvAdminEmail)
	}
	return nil
}
