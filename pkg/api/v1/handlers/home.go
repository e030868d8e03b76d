package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/api/v1/middleware"
	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/types"
)

// HomeHandler serves the landing page and the health check
type HomeHandler struct {
	*APIHandler
}

// NewHomeHandler creates a new HomeHandler instance
func NewHomeHandler(api *APIHandler) *HomeHandler {
	return &HomeHandler{APIHandler: api}
}

// Greeting returns the salutation for the hour of t
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 16:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// Home greets the visitor with the current day
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	now := h.now()
	return c.JSON(types.HomeResponse{
		Greeting:    Greeting(now),
		Weekday:     now.Weekday().String(),
		Date:        now.Format(models.DayLayout),
		CurrentUser: middleware.CurrentUser(c),
	})
}

// Health reports liveness
func (h *HomeHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}
