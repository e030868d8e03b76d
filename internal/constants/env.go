// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvSecretKey is the secret used to derive the session cookie encryption key
	EnvSecretKey = "SECRET_KEY"
	// EnvDatabaseURL is the database connection string: a postgres URL or a sqlite file path
	EnvDatabaseURL = "DATABASE_URL"
	// EnvListenAddr is the address the HTTP server binds to
	EnvListenAddr = "LISTEN_ADDR"

	// EnvLogLevel is the logrus level name
	EnvLogLevel = "LOG_LEVEL"
	// EnvLogFormat selects the log formatter, either "json" or "text"
	EnvLogFormat = "LOG_FORMAT"

	// EnvSessionStore selects the session storage backend, either "memory" or "redis"
	EnvSessionStore = "SESSION_STORE"
	// EnvSessionTTL is the idle lifetime of a session, as a Go duration
	EnvSessionTTL = "SESSION_TTL"
	// EnvCookieSecure marks the session cookie as HTTPS only
	EnvCookieSecure = "COOKIE_SECURE"
	EnvRedisAddr    = "REDIS_ADDR"
	EnvRedisPass    = "REDIS_PASSWORD"
	EnvRedisDB      = "REDIS_DB"

	// EnvGuestEmail is the email of the pre-provisioned guest account
	EnvGuestEmail = "GUEST_EMAIL"
	// EnvAdminEmail, EnvAdminPassword and EnvAdminName describe the administrator
	// account created on an empty database
	EnvAdminEmail    = "ADMIN_EMAIL"
	EnvAdminPassword = "ADMIN_PASSWORD"
	EnvAdminName     = "ADMIN_NAME"
)

// DefaultGuestEmail is the well-known email of the guest account
const DefaultGuestEmail = "guest@email.com"
