package handlers

import (
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/celestiaorg/taskboard/internal/services"
)

// APIHandler is a handler for the API
type APIHandler struct {
	auth     *services.Auth
	user     *services.User
	project  *services.Project
	task     *services.Task
	comment  *services.Comment
	sessions *session.Store
	clock    atomic.Pointer[func() time.Time]
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(
	auth *services.Auth,
	user *services.User,
	project *services.Project,
	task *services.Task,
	comment *services.Comment,
	sessions *session.Store,
) *APIHandler {
	return &APIHandler{
		auth:     auth,
		user:     user,
		project:  project,
		task:     task,
		comment:  comment,
		sessions: sessions,
	}
}

// SetClock overrides the clock used by the home page. It may be called
// while the handler is serving.
func (h *APIHandler) SetClock(now func() time.Time) {
	h.clock.Store(&now)
}

func (h *APIHandler) now() time.Time {
	if fn := h.clock.Load(); fn != nil {
		return (*fn)()
	}
	return time.Now()
}
