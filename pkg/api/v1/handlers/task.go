package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/api/v1/middleware"
	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/types"
)

// TaskHandler handles HTTP requests for tasks
type TaskHandler struct {
	*APIHandler
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(api *APIHandler) *TaskHandler {
	return &TaskHandler{APIHandler: api}
}

// ListTasks lists the incomplete tasks assigned to the current user, ordered
// by the sort_by query parameter
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	opts := getPaginationOptions(c.QueryInt("page", 1))
	tasks, err := h.task.ListAssigned(c.UserContext(), user.ID, c.Query("sort_by"), opts)
	if err != nil {
		return respondWithError(c, err)
	}
	total, err := h.task.CountAssigned(c.UserContext(), user.ID)
	if err != nil {
		return respondWithError(c, err)
	}

	ids := make([]uint, 0, 2*len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.CreatorID, t.AssigneeID)
	}
	users, err := h.user.Lookup(c.UserContext(), ids...)
	if err != nil {
		return respondWithError(c, err)
	}

	rows := make([]types.TaskView, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, types.NewTaskView(t, users))
	}
	return c.JSON(types.ListResponse[types.TaskView]{
		Rows: rows,
		Pagination: types.PaginationResponse{
			Total:  int(total),
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// OrderTasksBy redirects to the task list in the given order
func (h *TaskHandler) OrderTasksBy(order models.TaskOrder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.RedirectToRoute(RouteCurrentUserTasks, fiber.Map{
			"queries": map[string]string{"sort_by": string(order)},
		})
	}
}

// ShowTask renders a task with its comments
func (h *TaskHandler) ShowTask(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	detail, err := h.task.Detail(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err)
	}

	users := types.UserLookup(detail.Users)
	comments := make([]types.CommentView, 0, len(detail.Comments))
	for _, cm := range detail.Comments {
		comments = append(comments, types.NewCommentView(cm, users))
	}
	return c.JSON(types.TaskDetailResponse{
		Task:     types.NewTaskView(detail.Task, users),
		Project:  types.NewProjectView(detail.Project, users),
		Comments: comments,
	})
}

// AddComment posts a comment by the current user on a task
func (h *TaskHandler) AddComment(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}
	var params CommentParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	if _, err := h.comment.Create(c.UserContext(), middleware.CurrentUser(c), id, params.Text); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowTask, fiber.Map{"id": formatID(id)})
}

// MarkMyTask toggles completion of a task assigned to the current user
func (h *TaskHandler) MarkMyTask(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	if _, err := h.task.Toggle(c.UserContext(), id); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteCurrentUserTasks, fiber.Map{})
}

// MarkTask toggles completion of a task from its project page. The redirect
// goes to the project the task belongs to.
func (h *TaskHandler) MarkTask(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	task, err := h.task.Toggle(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowProject, fiber.Map{"id": formatID(task.ProjectID)})
}

// NewTaskForm returns the assignee choices for a new task in a project
func (h *TaskHandler) NewTaskForm(c *fiber.Ctx) error {
	projectID, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	choices, err := h.task.AssigneeChoices(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(types.TaskFormResponse{ProjectID: projectID, AssigneeChoices: choices})
}

// CreateTask adds a task to a project
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	projectID, err := parseID(c, idParam)
	if err != nil {
		return err
	}
	var params TaskParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	if _, err := h.task.Create(c.UserContext(), middleware.CurrentUser(c), projectID, params.input()); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowProject, fiber.Map{"id": formatID(projectID)})
}

// EditTaskForm returns the current values of a task and the assignee choices
func (h *TaskHandler) EditTaskForm(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	task, err := h.task.Get(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	choices, err := h.task.AssigneeChoices(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(types.TaskFormResponse{ProjectID: task.ProjectID, Task: task, AssigneeChoices: choices})
}

// EditTask replaces the text, due date and assignee of a task
func (h *TaskHandler) EditTask(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}
	var params TaskParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	task, err := h.task.Update(c.UserContext(), middleware.CurrentUser(c), id, params.input())
	if err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowProject, fiber.Map{"id": formatID(task.ProjectID)})
}

// EditDueDateForm returns the current due date of a task
func (h *TaskHandler) EditDueDateForm(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	task, err := h.task.Get(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(DueDateParams{DueDate: task.DueDate})
}

// EditDueDate moves the due date of a task assigned to the current user
func (h *TaskHandler) EditDueDate(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}
	var params DueDateParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	task, err := h.task.UpdateDueDate(c.UserContext(), id, params.DueDate)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowProject, fiber.Map{"id": formatID(task.ProjectID)})
}

// DeleteTask deletes a task and its comments
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	task, err := h.task.Delete(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowProject, fiber.Map{"id": formatID(task.ProjectID)})
}
