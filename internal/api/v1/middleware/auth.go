package middleware

import (
	"context"
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/celestiaorg/taskboard/internal/db/models"
	log "github.com/celestiaorg/taskboard/internal/logger"
	sess "github.com/celestiaorg/taskboard/internal/session"
)

const userLocalsKey = "current_user"

// ErrMsgLoginRequired is returned to anonymous requests on protected routes
const ErrMsgLoginRequired = "Login required"

// UserLoader resolves the user bound to a session
type UserLoader interface {
	CurrentUser(ctx context.Context, userID uint) (*models.User, error)
}

// CurrentUser returns the user resolved for this request, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

// RequireLogin rejects requests without a logged-in user with 401
func RequireLogin(store *session.Store, loader UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := loadUser(c, store, loader); err != nil {
			return err
		}
		if CurrentUser(c) == nil {
			return fiber.NewError(fiber.StatusUnauthorized, ErrMsgLoginRequired)
		}
		return c.Next()
	}
}

// OptionalUser resolves the session user when there is one
func OptionalUser(store *session.Store, loader UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := loadUser(c, store, loader); err != nil {
			return err
		}
		return c.Next()
	}
}

func loadUser(c *fiber.Ctx, store *session.Store, loader UserLoader) error {
	if CurrentUser(c) != nil {
		return nil
	}
	id, err := sess.UserID(c, store)
	if errors.Is(err, sess.ErrNoUser) {
		return nil
	}
	if err != nil {
		return err
	}

	user, err := loader.CurrentUser(c.UserContext(), id)
	if err != nil {
		// the account behind a stale session is treated as logged out
		log.DebugWithFields("session user not found", map[string]interface{}{
			"user_id": id,
			"error":   err.Error(),
		})
		return nil
	}
	c.Locals(userLocalsKey, user)
	return nil
}
