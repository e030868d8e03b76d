package middleware

import (
	"errors"
	"fmt"
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/authz"
)

// IDSource extracts the guarded resource ID from a request
type IDSource struct {
	Name string
	get  func(c *fiber.Ctx) string
}

// PathParam reads the resource ID from a path parameter
func PathParam(name string) IDSource {
	return IDSource{Name: name, get: func(c *fiber.Ctx) string { return c.Params(name) }}
}

// QueryParam reads the resource ID from a query parameter
func QueryParam(name string) IDSource {
	return IDSource{Name: name, get: func(c *fiber.Ctx) string { return c.Query(name) }}
}

// NoID is used by rules that do not look at a resource
func NoID() IDSource {
	return IDSource{Name: "", get: func(*fiber.Ctx) string { return "" }}
}

// ID parses the resource ID of the request
func (s IDSource) ID(c *fiber.Ctx) (uint, error) {
	if s.Name == "" {
		return 0, nil
	}
	raw := s.get(c)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", s.Name, raw)
	}
	return uint(id), nil
}

// Guard runs rule for the current user against the resource named by src
// before the handler. A missing resource yields 404 and a failed rule 403.
func Guard(rule authz.Rule, src IDSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := src.ID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		err = rule.Allow(c.UserContext(), CurrentUser(c), id)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, authz.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Not found")
		case errors.Is(err, authz.ErrForbidden):
			return fiber.NewError(fiber.StatusForbidden, "Forbidden")
		default:
			return fmt.Errorf("%s: %w", rule.Name, err)
		}
	}
}
