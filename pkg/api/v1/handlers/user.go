package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/types"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	*APIHandler
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(api *APIHandler) *UserHandler {
	return &UserHandler{
		APIHandler: api,
	}
}

// ListUsers lists every account, one page at a time
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	opts := getPaginationOptions(c.QueryInt("page", 1))
	users, err := h.user.List(c.UserContext(), opts)
	if err != nil {
		return respondWithError(c, err)
	}
	total, err := h.user.Count(c.UserContext())
	if err != nil {
		return respondWithError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(types.ListResponse[models.User]{
		Rows: users,
		Pagination: types.PaginationResponse{
			Total:  int(total),
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}
