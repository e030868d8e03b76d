package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/taskboard/internal/authz"
	"github.com/celestiaorg/taskboard/internal/db/models"
)

// ownerRule allows user 1 on resource 10; resource 99 does not exist
func ownerRule() authz.Rule {
	return authz.Rule{
		Name: "test-owner",
		Check: func(_ context.Context, user *models.User, id uint) error {
			if id == 99 {
				return authz.ErrNotFound
			}
			if user.ID != 1 {
				return authz.ErrForbidden
			}
			return nil
		},
	}
}

func newGuardApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals(userLocalsKey, &models.User{Model: models.Model{ID: userID}})
		}
		return c.Next()
	})
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/things/:id", Guard(ownerRule(), PathParam("id")), ok)
	app.Get("/things", Guard(ownerRule(), QueryParam("thing_id")), ok)
	return app
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		path   string
		want   int
	}{
		{name: "owner by path", userID: 1, path: "/things/10", want: fiber.StatusOK},
		{name: "owner by query", userID: 1, path: "/things?thing_id=10", want: fiber.StatusOK},
		{name: "stranger", userID: 2, path: "/things/10", want: fiber.StatusForbidden},
		{name: "anonymous", userID: 0, path: "/things/10", want: fiber.StatusForbidden},
		{name: "missing resource", userID: 1, path: "/things/99", want: fiber.StatusNotFound},
		{name: "malformed id", userID: 1, path: "/things/abc", want: fiber.StatusBadRequest},
		{name: "missing query id", userID: 1, path: "/things", want: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardApp(tt.userID)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestIDSource(t *testing.T) {
	app := fiber.New()
	var got uint
	app.Get("/x/:id", func(c *fiber.Ctx) error {
		id, err := PathParam("id").ID(c)
		if err != nil {
			return err
		}
		got = id
		none, err := NoID().ID(c)
		if err != nil || none != 0 {
			return fiber.ErrInternalServerError
		}
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(42), got)
}
