// Package middleware provides the fiber middleware shared by all routes
package middleware

import (
	"time"

	log "github.com/celestiaorg/taskboard/internal/logger"

	fiber "github.com/gofiber/fiber/v2"
)

// Logger returns a middleware that logs HTTP requests
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continue chain. Errors are rendered here so the logged status is
		// the one the client receives.
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		// After request
		stop := time.Now()
		latency := stop.Sub(start)

		fields := map[string]interface{}{
			"timestamp": stop.Format("2006/01/02 - 15:04:05"),
			"status":    c.Response().StatusCode(),
			"latency":   latency,
			"ip":        c.IP(),
			"method":    c.Method(),
			"path":      c.Path(),
			"handler":   c.Route().Name,
		}
		if user := CurrentUser(c); user != nil {
			fields["user_id"] = user.ID
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		log.InfoWithFields("Request", fields)

		return nil
	}
}
