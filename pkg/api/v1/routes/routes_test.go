package routes

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "/", HomeURL())
	assert.Equal(t, "/show-project/3", ShowProjectURL(3))
	assert.Equal(t, "/task/7", ShowTaskURL(7))
	assert.Equal(t, "/current-user-tasks", CurrentUserTasksURL(""))
	assert.Equal(t, "/current-user-tasks?sort_by=project", CurrentUserTasksURL(models.TaskOrderProject))
	assert.Equal(t, "/edit-comment?comment_id=2&task_id=5", CommentURL(handlers.RouteEditComment, 5, 2))
	assert.Equal(t, "/delete-task/9", IDURL(handlers.RouteDeleteTask, 9))
	assert.Equal(t, "/users?page=2", BuildURL(handlers.RouteListUsers, nil, url.Values{"page": {"2"}}))
	assert.Empty(t, BuildURL("NoSuchRoute", nil, nil))
}

func TestEveryRouteIsNamed(t *testing.T) {
	names := []string{
		handlers.RouteHome, handlers.RouteHealth,
		handlers.RouteRegister, handlers.RouteLogin, handlers.RouteLoginGuest, handlers.RouteLogout,
		handlers.RouteListUsers,
		handlers.RouteCurrentUserProjects, handlers.RouteNewProject, handlers.RouteShowProject,
		handlers.RouteEditProjectForm, handlers.RouteEditProject, handlers.RouteDeleteProject,
		handlers.RouteCurrentUserTasks, handlers.RouteOrderTasksByDueDate, handlers.RouteOrderTasksByProject,
		handlers.RouteOrderTasksByCreator, handlers.RouteShowTask, handlers.RouteAddComment,
		handlers.RouteMarkMyTask, handlers.RouteMarkTask, handlers.RouteNewTaskForm, handlers.RouteNewTask,
		handlers.RouteEditTaskForm, handlers.RouteEditTask, handlers.RouteEditDueDateForm,
		handlers.RouteEditDueDate, handlers.RouteDeleteTask,
		handlers.RouteEditCommentForm, handlers.RouteEditComment, handlers.RouteDeleteComment,
	}
	for _, name := range names {
		assert.NotEmpty(t, GetRoute(name), name)
	}
}
