// Package routes defines the HTTP routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/celestiaorg/taskboard/internal/api/v1/middleware"
	"github.com/celestiaorg/taskboard/internal/authz"
	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
)

/*

To keep this file organized, routes should be organized in the following way:

1. Public routes first, then users, projects, tasks, comments
2. Order routes in GET, POST order.
3. Every protected route declares its guard next to it: the rule and the
   parameter holding the resource ID.

*/

// DefaultPort is the default port for the server
const DefaultPort = "8080"

// DefaultBaseURL is the default base URL for the server
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the routes
func RegisterRoutes(
	app *fiber.App,
	api *handlers.APIHandler,
	policy *authz.Policy,
	store *session.Store,
	loader middleware.UserLoader,
) {
	home := handlers.NewHomeHandler(api)
	auth := handlers.NewAuthHandler(api)
	users := handlers.NewUserHandler(api)
	projects := handlers.NewProjectHandler(api)
	tasks := handlers.NewTaskHandler(api)
	comments := handlers.NewCommentHandler(api)

	login := middleware.RequireLogin(store, loader)
	guard := middleware.Guard
	byID := handlers.IDParam()
	byTaskQuery := handlers.TaskIDQuery()

	// Public
	app.Get("/health", home.Health).Name(handlers.RouteHealth)
	app.Get("/", middleware.OptionalUser(store, loader), home.Home).Name(handlers.RouteHome)
	app.Post("/login", auth.Login).Name(handlers.RouteLogin)
	app.Get("/login-guest", auth.LoginGuest).Name(handlers.RouteLoginGuest)
	app.Get("/logout", auth.Logout).Name(handlers.RouteLogout)

	// Users
	app.Get("/users", login, guard(policy.Admin(), middleware.NoID()), users.ListUsers).Name(handlers.RouteListUsers)
	app.Post("/register", login, guard(policy.Admin(), middleware.NoID()), auth.Register).Name(handlers.RouteRegister)

	// Projects
	app.Get("/current-user-projects", login, projects.ListProjects).Name(handlers.RouteCurrentUserProjects)
	app.Get("/show-project/:id", login, guard(policy.ProjectCollaborator(), byID), projects.ShowProject).Name(handlers.RouteShowProject)
	app.Get("/edit-project/:id", login, guard(policy.ProjectCreator(), byID), projects.EditProjectForm).Name(handlers.RouteEditProjectForm)
	app.Get("/delete-project/:id", login, guard(policy.ProjectCreator(), byID), projects.DeleteProject).Name(handlers.RouteDeleteProject)
	app.Post("/new-project", login, projects.CreateProject).Name(handlers.RouteNewProject)
	app.Post("/edit-project/:id", login, guard(policy.ProjectCreator(), byID), projects.EditProject).Name(handlers.RouteEditProject)

	// Tasks
	app.Get("/current-user-tasks", login, tasks.ListTasks).Name(handlers.RouteCurrentUserTasks)
	app.Get("/order-tasks-by-due-date", login, tasks.OrderTasksBy(models.TaskOrderDueDate)).Name(handlers.RouteOrderTasksByDueDate)
	app.Get("/order-tasks-by-project", login, tasks.OrderTasksBy(models.TaskOrderProject)).Name(handlers.RouteOrderTasksByProject)
	app.Get("/order-tasks-by-creator", login, tasks.OrderTasksBy(models.TaskOrderCreator)).Name(handlers.RouteOrderTasksByCreator)
	app.Get("/task/:id", login, guard(policy.TaskCollaborator(), byID), tasks.ShowTask).Name(handlers.RouteShowTask)
	app.Get("/mark-my-task/:id", login, guard(policy.TaskAssignee(), byID), tasks.MarkMyTask).Name(handlers.RouteMarkMyTask)
	app.Get("/mark-task/:id", login, guard(policy.TaskCollaborator(), byID), tasks.MarkTask).Name(handlers.RouteMarkTask)
	app.Get("/new-task/:id", login, guard(policy.ProjectCreator(), byID), tasks.NewTaskForm).Name(handlers.RouteNewTaskForm)
	app.Get("/edit-task/:id", login, guard(policy.TaskCreator(), byID), tasks.EditTaskForm).Name(handlers.RouteEditTaskForm)
	app.Get("/edit-task-due-date/:id", login, guard(policy.TaskAssignee(), byID), tasks.EditDueDateForm).Name(handlers.RouteEditDueDateForm)
	app.Get("/delete-task/:id", login, guard(policy.TaskCreator(), byID), tasks.DeleteTask).Name(handlers.RouteDeleteTask)
	app.Post("/task/:id", login, guard(policy.TaskCollaborator(), byID), tasks.AddComment).Name(handlers.RouteAddComment)
	app.Post("/new-task/:id", login, guard(policy.ProjectCreator(), byID), tasks.CreateTask).Name(handlers.RouteNewTask)
	app.Post("/edit-task/:id", login, guard(policy.TaskCreator(), byID), tasks.EditTask).Name(handlers.RouteEditTask)
	app.Post("/edit-task-due-date/:id", login, guard(policy.TaskAssignee(), byID), tasks.EditDueDate).Name(handlers.RouteEditDueDate)

	// Comments
	app.Get("/edit-comment", login, guard(policy.TaskCollaborator(), byTaskQuery), comments.EditCommentForm).Name(handlers.RouteEditCommentForm)
	app.Get("/delete-comment", login, guard(policy.TaskCollaborator(), byTaskQuery), comments.DeleteComment).Name(handlers.RouteDeleteComment)
	app.Post("/edit-comment", login, guard(policy.TaskCollaborator(), byTaskQuery), comments.EditComment).Name(handlers.RouteEditComment)
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		cache := make(map[string]string)

		// Create a mock app
		app := fiber.New()

		// Register routes with empty dependencies; nothing is served from this app
		RegisterRoutes(app, &handlers.APIHandler{}, authz.NewPolicy(nil, nil), nil, nil)

		// Extract routes from the app
		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				cache[route.Name] = route.Path
			}
		}

		routeCacheMu.Lock()
		routeCache = cache
		routeCacheMu.Unlock()
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	initRouteCache()

	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()
	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	// Replace parameters in the route
	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}

	// Add query parameters if any
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

func idParams(id uint) map[string]string {
	return map[string]string{"id": fmt.Sprint(id)}
}

// HomeURL returns the URL of the landing page
func HomeURL() string {
	return BuildURL(handlers.RouteHome, nil, nil)
}

// ShowProjectURL returns the URL of a project page
func ShowProjectURL(id uint) string {
	return BuildURL(handlers.RouteShowProject, idParams(id), nil)
}

// ShowTaskURL returns the URL of a task page
func ShowTaskURL(id uint) string {
	return BuildURL(handlers.RouteShowTask, idParams(id), nil)
}

// CurrentUserTasksURL returns the URL of the current user's task list
func CurrentUserTasksURL(sortBy models.TaskOrder) string {
	var q url.Values
	if sortBy != "" {
		q = url.Values{"sort_by": {string(sortBy)}}
	}
	return BuildURL(handlers.RouteCurrentUserTasks, nil, q)
}

// CommentURL returns the URL of a comment route for a task
func CommentURL(routeName string, taskID, commentID uint) string {
	return BuildURL(routeName, nil, url.Values{
		"task_id":    {fmt.Sprint(taskID)},
		"comment_id": {fmt.Sprint(commentID)},
	})
}

// IDURL returns the URL of a route taking a single :id parameter
func IDURL(routeName string, id uint) string {
	return BuildURL(routeName, idParams(id), nil)
}
