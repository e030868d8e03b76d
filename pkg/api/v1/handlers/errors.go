// Package handlers provides HTTP request handling
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/logger"
	"github.com/celestiaorg/taskboard/internal/services"
	"github.com/celestiaorg/taskboard/internal/types"
)

// Common error messages
const (
	ErrMsgInvalidParams    = "Invalid parameters"
	ErrMsgInvalidReqFormat = "Invalid request format"
	ErrMsgNotFound         = "Not found"
	ErrMsgForbidden        = "Forbidden"
	ErrMsgInternal         = "Internal server error"
)

// Auth error messages
const (
	ErrMsgEmailInUse          = "Email already in use"
	ErrMsgInvalidCredentials  = "Invalid email or password"
	ErrMsgGuestNotProvisioned = "Guest account is not available"
	ErrMsgSessionFailed       = "Failed to update session"
)

// ErrorHandler renders every error that reaches fiber as an ErrorResponse
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := ErrMsgInternal

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		logger.ErrorWithFields("request failed", map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"error":  err.Error(),
		})
	}

	return c.Status(code).JSON(types.ErrorResponse{Error: msg})
}

// respondWithError maps a service error to its HTTP status
func respondWithError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Error:   ErrMsgInvalidParams,
			Details: verr.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, ErrMsgNotFound)
	case errors.Is(err, services.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, ErrMsgForbidden)
	case errors.Is(err, services.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusConflict, ErrMsgEmailInUse)
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, ErrMsgInvalidCredentials)
	case errors.Is(err, services.ErrGuestNotProvisioned):
		return fiber.NewError(fiber.StatusServiceUnavailable, ErrMsgGuestNotProvisioned)
	default:
		return err
	}
}

// sessionError reports a session storage failure without leaking its cause
func sessionError(c *fiber.Ctx, err error) error {
	logger.ErrorWithFields(ErrMsgSessionFailed, map[string]interface{}{
		"path":  c.Path(),
		"error": err.Error(),
	})
	return fiber.NewError(fiber.StatusInternalServerError, ErrMsgSessionFailed)
}

// parseBody decodes a form or JSON body into params
func parseBody(c *fiber.Ctx, params interface{}) error {
	if err := c.BodyParser(params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqFormat)
	}
	return nil
}
