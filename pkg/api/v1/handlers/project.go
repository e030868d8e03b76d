package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/taskboard/internal/api/v1/middleware"
	"github.com/celestiaorg/taskboard/internal/types"
)

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	*APIHandler
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(api *APIHandler) *ProjectHandler {
	return &ProjectHandler{APIHandler: api}
}

// ListProjects lists the projects the current user created or holds a task in
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	opts := getPaginationOptions(c.QueryInt("page", 1))

	projects, err := h.project.ListForUser(c.UserContext(), user.ID, opts)
	if err != nil {
		return respondWithError(c, err)
	}
	total, err := h.project.CountForUser(c.UserContext(), user.ID)
	if err != nil {
		return respondWithError(c, err)
	}

	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.CreatorID)
	}
	users, err := h.user.Lookup(c.UserContext(), ids...)
	if err != nil {
		return respondWithError(c, err)
	}

	rows := make([]types.ProjectView, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, types.NewProjectView(p, users))
	}
	return c.JSON(types.ListResponse[types.ProjectView]{
		Rows: rows,
		Pagination: types.PaginationResponse{
			Total:  int(total),
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// CreateProject creates a project owned by the current user
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var params ProjectParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if _, err := h.project.Create(c.UserContext(), user.ID, params.input()); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteCurrentUserProjects, fiber.Map{})
}

// ShowProject renders a project with its tasks
func (h *ProjectHandler) ShowProject(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	detail, err := h.project.Detail(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err)
	}

	users := types.UserLookup(detail.Users)
	tasks := make([]types.TaskView, 0, len(detail.Tasks))
	for _, t := range detail.Tasks {
		tasks = append(tasks, types.NewTaskView(t, users))
	}
	return c.JSON(types.ProjectDetailResponse{
		Project: types.NewProjectView(detail.Project, users),
		Tasks:   tasks,
	})
}

// EditProjectForm returns the current values of a project
func (h *ProjectHandler) EditProjectForm(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	project, err := h.project.Get(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(ProjectParams{Title: project.Title, Description: project.Description})
}

// EditProject replaces the title and description of a project
func (h *ProjectHandler) EditProject(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}
	var params ProjectParams
	if err := parseBody(c, &params); err != nil {
		return err
	}

	if _, err := h.project.Update(c.UserContext(), id, params.input()); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteShowProject, fiber.Map{"id": formatID(id)})
}

// DeleteProject deletes a project with its tasks and comments
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := parseID(c, idParam)
	if err != nil {
		return err
	}

	if err := h.project.Delete(c.UserContext(), id); err != nil {
		return respondWithError(c, err)
	}
	return c.RedirectToRoute(RouteCurrentUserProjects, fiber.Map{})
}
