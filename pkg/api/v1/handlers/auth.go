package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/logger"
	"github.com/celestiaorg/taskboard/internal/session"
)

// AuthHandler handles registration and the login lifecycle
type AuthHandler struct {
	*APIHandler
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(api *APIHandler) *AuthHandler {
	return &AuthHandler{APIHandler: api}
}

// Register creates an account and redirects to the user list
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var params RegisterParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	if _, err := h.auth.Register(c.UserContext(), params.Email, params.Password, params.Name); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteListUsers, fiber.Map{})
}

// Login binds a fresh session to the user matching the credentials
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var params LoginParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	user, err := h.auth.Login(c.UserContext(), params.Email, params.Password)
	if err != nil {
		logger.DebugWithFields("login failed", map[string]interface{}{"ip": c.IP()})
		return respondWithError(c, err)
	}
	if err := session.Login(c, h.sessions, user.ID); err != nil {
		return sessionError(c, err)
	}
	return c.RedirectToRoute(RouteHome, fiber.Map{})
}

// LoginGuest logs in as the seeded guest account
func (h *AuthHandler) LoginGuest(c *fiber.Ctx) error {
	user, err := h.auth.LoginAsGuest(c.UserContext())
	if err != nil {
		return respondWithError(c, err)
	}
	if err := session.Login(c, h.sessions, user.ID); err != nil {
		return sessionError(c, err)
	}
	return c.RedirectToRoute(RouteHome, fiber.Map{})
}

// Logout destroys the session
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := session.Logout(c, h.sessions); err != nil {
		return sessionError(c, err)
	}
	return c.RedirectToRoute(RouteHome, fiber.Map{})
}
