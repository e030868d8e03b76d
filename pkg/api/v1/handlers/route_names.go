package handlers

// Route names, used with fiber's RedirectToRoute and the routes URL builder
const (
	RouteHome   = "Home"
	RouteHealth = "HealthCheck"

	// Auth routes
	RouteRegister   = "Register"
	RouteLogin      = "Login"
	RouteLoginGuest = "LoginGuest"
	RouteLogout     = "Logout"

	// User routes
	RouteListUsers = "ListUsers"

	// Project routes
	RouteCurrentUserProjects = "CurrentUserProjects"
	RouteNewProject          = "NewProject"
	RouteShowProject         = "ShowProject"
	RouteEditProjectForm     = "EditProjectForm"
	RouteEditProject         = "EditProject"
	RouteDeleteProject       = "DeleteProject"

	// Task routes
	RouteCurrentUserTasks    = "CurrentUserTasks"
	RouteOrderTasksByDueDate = "OrderTasksByDueDate"
	RouteOrderTasksByProject = "OrderTasksByProject"
	RouteOrderTasksByCreator = "OrderTasksByCreator"
	RouteShowTask            = "ShowTask"
	RouteAddComment          = "AddComment"
	RouteMarkMyTask          = "MarkMyTask"
	RouteMarkTask            = "MarkTask"
	RouteNewTaskForm         = "NewTaskForm"
	RouteNewTask             = "NewTask"
	RouteEditTaskForm        = "EditTaskForm"
	RouteEditTask            = "EditTask"
	RouteEditDueDateForm     = "EditTaskDueDateForm"
	RouteEditDueDate         = "EditTaskDueDate"
	RouteDeleteTask          = "DeleteTask"

	// Comment routes
	RouteEditCommentForm = "EditCommentForm"
	RouteEditComment     = "EditComment"
	RouteDeleteComment   = "DeleteComment"
)
