package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/api/v1/middleware"
)

// CommentHandler handles editing and deleting comments. Both routes take
// comment_id and task_id query parameters.
type CommentHandler struct {
	*APIHandler
}

// NewCommentHandler creates a new CommentHandler instance
func NewCommentHandler(api *APIHandler) *CommentHandler {
	return &CommentHandler{APIHandler: api}
}

func commentRef(c *fiber.Ctx) (taskID, commentID uint, err error) {
	if taskID, err = parseID(c, taskIDQuery); err != nil {
		return 0, 0, err
	}
	if commentID, err = parseID(c, commentIDQuery); err != nil {
		return 0, 0, err
	}
	return taskID, commentID, nil
}

// EditCommentForm returns the current text of a comment authored by the current user
func (h *CommentHandler) EditCommentForm(c *fiber.Ctx) error {
	taskID, commentID, err := commentRef(c)
	if err != nil {
		return err
	}

	comment, err := h.comment.GetOwn(c.UserContext(), middleware.CurrentUser(c), taskID, commentID)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(CommentParams{Text: comment.Text})
}

// EditComment replaces the text of a comment
func (h *CommentHandler) EditComment(c *fiber.Ctx) error {
	taskID, commentID, err := commentRef(c)
	if err != nil {
		return err
	}
	var params CommentParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	if _, err := h.comment.Update(c.UserContext(), middleware.CurrentUser(c), taskID, commentID, params.Text); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowTask, fiber.Map{"id": formatID(taskID)})
}

// DeleteComment removes a comment
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	taskID, commentID, err := commentRef(c)
	if err != nil {
		return err
	}

	if err := h.comment.Delete(c.UserContext(), middleware.CurrentUser(c), taskID, commentID); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowTask, fiber.Map{"id": formatID(taskID)})
}
