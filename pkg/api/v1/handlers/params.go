package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/api/v1/middleware"
	"github.com/celestiaorg/taskboard/internal/services"
)

// RegisterParams defines the parameters for registering a user
type RegisterParams struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

// LoginParams defines the parameters for logging in
type LoginParams struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ProjectParams defines the editable fields of a project
type ProjectParams struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

func (p ProjectParams) input() services.ProjectInput {
	return services.ProjectInput{Title: p.Title, Description: p.Description}
}

// TaskParams defines the editable fields of a task
type TaskParams struct {
	Text       string `json:"text" form:"text"`
	DueDate    string `json:"due_date" form:"due_date"`
	AssigneeID uint   `json:"assignee_id" form:"assignee_id"`
}

func (p TaskParams) input() services.TaskInput {
	return services.TaskInput{Text: p.Text, DueDate: p.DueDate, AssigneeID: p.AssigneeID}
}

// DueDateParams defines the parameters for moving a task's due date
type DueDateParams struct {
	DueDate string `json:"due_date" form:"due_date"`
}

// CommentParams defines the parameters for writing a comment
type CommentParams struct {
	Text string `json:"text" form:"text"`
}

// Request parameter sources
var (
	idParam        = middleware.PathParam("id")
	taskIDQuery    = middleware.QueryParam("task_id")
	commentIDQuery = middleware.QueryParam("comment_id")
)

// TaskIDQuery names the query parameter guarding the comment routes
func TaskIDQuery() middleware.IDSource {
	return taskIDQuery
}

// IDParam names the path parameter guarding resource routes
func IDParam() middleware.IDSource {
	return idParam
}

func parseID(c *fiber.Ctx, src middleware.IDSource) (uint, error) {
	id, err := src.ID(c)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return id, nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
