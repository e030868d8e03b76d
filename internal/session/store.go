// Package session keeps the logged-in user on the server side, keyed by an
// opaque cookie
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/celestiaorg/taskboard/internal/config"
)

// CookieName is the name of the session cookie
const CookieName = "taskboard_session"

const userIDKey = "user_id"

// Options configures the session store
type Options struct {
	TTL          time.Duration
	CookieSecure bool
	// Storage holds session data; nil keeps it in memory
	Storage fiber.Storage
}

// New creates a session store
func New(opts Options) *session.Store {
	if opts.TTL <= 0 {
		opts.TTL = config.DefaultSessionTTL
	}
	store := session.New(session.Config{
		Expiration:     opts.TTL,
		Storage:        opts.Storage,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   opts.CookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   uuid.NewString,
	})
	store.RegisterType(uint(0))
	return store
}

// PingTimeout bounds the startup connection check against redis
const PingTimeout = 5 * time.Second

// NewFromConfig builds the session store described by cfg, connecting to
// redis when cfg selects it. An unreachable redis fails here rather than on
// the first request. The returned storage is nil for the memory store.
func NewFromConfig(ctx context.Context, cfg config.SessionConfig) (*session.Store, fiber.Storage, error) {
	opts := Options{TTL: cfg.TTL, CookieSecure: cfg.CookieSecure}

	switch cfg.Store {
	case config.SessionStoreMemory, "":
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		storage := NewRedisStorage(client, DefaultKeyPrefix)

		pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
		defer cancel()
		if err := storage.Ping(pingCtx); err != nil {
			_ = storage.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		opts.Storage = storage
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}

	return New(opts), opts.Storage, nil
}

// Login starts a fresh session bound to userID. The session ID is
// regenerated so an identifier issued before login cannot be reused.
func Login(c *fiber.Ctx, store *session.Store, userID uint) error {
	sess, err := store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	sess.Set(userIDKey, userID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout destroys the server-side session
func Logout(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// ErrNoUser is returned by UserID when the session is anonymous
var ErrNoUser = errors.New("no user in session")

// UserID returns the user bound to the request's session
func UserID(c *fiber.Ctx, store *session.Store) (uint, error) {
	sess, err := store.Get(c)
	if err != nil {
		return 0, fmt.Errorf("failed to load session: %w", err)
	}
	id, ok := sess.Get(userIDKey).(uint)
	if !ok || id == 0 {
		return 0, ErrNoUser
	}
	return id, nil
}
