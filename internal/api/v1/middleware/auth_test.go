package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/taskboard/internal/db/models"
	sess "github.com/celestiaorg/taskboard/internal/session"
)

type fakeLoader map[uint]*models.User

func (f fakeLoader) CurrentUser(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func newAuthApp() *fiber.App {
	store := sess.New(sess.Options{})
	loader := fakeLoader{7: {Model: models.Model{ID: 7}, Name: "Seven"}}

	app := fiber.New()
	app.Get("/login/:id", func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		return sess.Login(c, store, uint(id))
	})
	app.Get("/private", RequireLogin(store, loader), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Name)
	})
	app.Get("/public", OptionalUser(store, loader), func(c *fiber.Ctx) error {
		if user := CurrentUser(c); user != nil {
			return c.SendString(user.Name)
		}
		return c.SendString("anonymous")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string, cookies []*http.Cookie) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRequireLogin(t *testing.T) {
	app := newAuthApp()

	resp, _ := get(t, app, "/private", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	login, _ := get(t, app, "/login/7", nil)
	resp, body := get(t, app, "/private", login.Cookies())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Seven", body)

	// a session for an account that no longer resolves is anonymous
	stale, _ := get(t, app, "/login/8", nil)
	resp, _ = get(t, app, "/private", stale.Cookies())
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalUser(t *testing.T) {
	app := newAuthApp()

	_, body := get(t, app, "/public", nil)
	assert.Equal(t, "anonymous", body)

	login, _ := get(t, app, "/login/7", nil)
	_, body = get(t, app, "/public", login.Cookies())
	assert.Equal(t, "Seven", body)
}
