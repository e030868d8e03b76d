// Package types contains PUBLIC aliases for the API response documents.
package types

import (
	internalmodels "github.com/celestiaorg/taskboard/internal/db/models"
	internaltypes "github.com/celestiaorg/taskboard/internal/types"
)

// UserList is the user listing document
type UserList = internaltypes.ListResponse[internalmodels.User]

// ProjectList is the project listing document
type ProjectList = internaltypes.ListResponse[internaltypes.ProjectView]

// TaskList is the task listing document
type TaskList = internaltypes.ListResponse[internaltypes.TaskView]

// PaginationResponse describes the page a list response holds
type PaginationResponse = internaltypes.PaginationResponse

// ErrorResponse is the body of every error response
type ErrorResponse = internaltypes.ErrorResponse

// HomeResponse is the landing page document
type HomeResponse = internaltypes.HomeResponse

// ProjectView is a project with its creator resolved
type ProjectView = internaltypes.ProjectView

// TaskView is a task with its creator and assignee resolved
type TaskView = internaltypes.TaskView

// CommentView is a comment with its author resolved
type CommentView = internaltypes.CommentView

// ProjectDetailResponse is the show-project document
type ProjectDetailResponse = internaltypes.ProjectDetailResponse

// TaskDetailResponse is the show-task document
type TaskDetailResponse = internaltypes.TaskDetailResponse

// TaskFormResponse carries the values and choices of a task form
type TaskFormResponse = internaltypes.TaskFormResponse
