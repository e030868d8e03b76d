package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/taskboard/internal/config"
)

func newTestApp(store *session.Store) *fiber.App {
	app := fiber.New()
	app.Get("/login/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return err
		}
		return Login(c, store, uint(id))
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, err := UserID(c, store)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(strconv.FormatUint(uint64(id), 10))
	})
	app.Get("/logout", func(c *fiber.Ctx) error {
		return Logout(c, store)
	})
	return app
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("response carries no %s cookie", CookieName)
	return nil
}

func do(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(New(Options{TTL: time.Hour}))

	resp := do(t, app, "/whoami", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, "/login/7", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.HttpOnly)

	resp = do(t, app, "/whoami", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, "/logout", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, "/whoami", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRegeneratesSessionID(t *testing.T) {
	app := newTestApp(New(Options{}))

	first := sessionCookie(t, do(t, app, "/login/1", nil))
	second := sessionCookie(t, do(t, app, "/login/2", first))
	assert.NotEqual(t, first.Value, second.Value)

	// the pre-login identifier no longer resolves to a user
	resp := do(t, app, "/whoami", first)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()
	store, storage, err := NewFromConfig(ctx, config.SessionConfig{Store: config.SessionStoreMemory})
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Nil(t, storage)

	_, _, err = NewFromConfig(ctx, config.SessionConfig{Store: "memcached"})
	assert.Error(t, err)
}

func TestNewFromConfig_UnreachableRedis(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store, storage, err := NewFromConfig(ctx, config.SessionConfig{
		Store:     config.SessionStoreRedis,
		RedisAddr: "127.0.0.1:1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
	assert.Nil(t, store)
	assert.Nil(t, storage)
}

func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	storage := NewRedisStorage(redis.NewClient(&redis.Options{Addr: addr}), "taskboard-test:")
	defer storage.Close()
	require.NoError(t, storage.Ping(context.Background()))
	require.NoError(t, storage.Reset())

	val, err := storage.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("k", []byte("v"), time.Minute))
	val, err = storage.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, storage.Delete("k"))
	val, err = storage.Get("k")
	require.NoError(t, err)
	assert.Nil(t, val)

	app := newTestApp(New(Options{Storage: storage}))
	cookie := sessionCookie(t, do(t, app, "/login/3", nil))
	assert.Equal(t, fiber.StatusOK, do(t, app, "/whoami", cookie).StatusCode)
	require.NoError(t, storage.Reset())
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/whoami", cookie).StatusCode)
}
