package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
	"github.com/celestiaorg/taskboard/pkg/api/v1/routes"
	"github.com/celestiaorg/taskboard/test"
)

func TestListTasksOrdering(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()
	ctx := suite.Context()

	bobUser := suite.CreateUser("bob@example.com", "Bob")
	admin := suite.Admin()
	bob := suite.LoginAs("bob@example.com", test.DefaultPassword)

	first := createProject(t, suite, admin, "First")
	second := createProject(t, suite, bob, "Second")

	createTask(t, suite, bob, second, handlers.TaskParams{Text: "b-early", DueDate: "2024-01-05", AssigneeID: bobUser.ID})
	createTask(t, suite, admin, first, handlers.TaskParams{Text: "a-late", DueDate: "2024-03-01", AssigneeID: bobUser.ID})
	createTask(t, suite, admin, first, handlers.TaskParams{Text: "a-early", DueDate: "2024-01-01", AssigneeID: bobUser.ID})
	done := createTask(t, suite, admin, first, handlers.TaskParams{Text: "done", DueDate: "2023-12-01", AssigneeID: bobUser.ID})
	createTask(t, suite, admin, first, handlers.TaskParams{Text: "not mine", DueDate: "2023-11-01", AssigneeID: models.AdminID})

	_, err := bob.MarkMyTask(ctx, done)
	require.NoError(t, err)

	texts := func(order models.TaskOrder) []string {
		t.Helper()
		tasks, err := bob.ListTasks(ctx, order, 1)
		require.NoError(t, err)
		out := make([]string, 0, len(tasks.Rows))
		for _, task := range tasks.Rows {
			out = append(out, task.Text)
		}
		return out
	}

	assert.Equal(t, []string{"a-early", "b-early", "a-late"}, texts(""), "default order is due date")
	assert.Equal(t, []string{"a-early", "b-early", "a-late"}, texts(models.TaskOrderDueDate))

	tasks, err := bob.ListTasks(ctx, models.TaskOrderProject, 1)
	require.NoError(t, err)
	require.Len(t, tasks.Rows, 3)
	for i := 1; i < len(tasks.Rows); i++ {
		assert.LessOrEqual(t, tasks.Rows[i-1].ProjectID, tasks.Rows[i].ProjectID)
	}

	byCreator := texts(models.TaskOrderCreator)
	require.Len(t, byCreator, 3)
	assert.Equal(t, "b-early", byCreator[2], "tasks created by the admin come first")

	assert.Equal(t, http.StatusBadRequest, statusOf(t, func() error {
		_, err := bob.ListTasks(ctx, models.TaskOrder("priority"), 1)
		return err
	}))

	location, err := bob.OrderTasksBy(ctx, models.TaskOrderProject)
	require.NoError(t, err)
	assert.Equal(t, routes.CurrentUserTasksURL(models.TaskOrderProject), location)
}

func TestListTasksPaging(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()
	ctx := suite.Context()
	admin := suite.Admin()

	projectID := createProject(t, suite, admin, "Backlog")
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	total := models.DefaultLimit + 1
	for i := 0; i < total; i++ {
		require.NoError(t, suite.TaskRepo.Create(ctx, &models.Task{
			Text:       "chore",
			DueDate:    start.AddDate(0, 0, i).Format(models.DueDateLayout),
			CreatorID:  models.AdminID,
			AssigneeID: models.AdminID,
			ProjectID:  projectID,
		}))
	}

	first, err := admin.ListTasks(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, first.Rows, models.DefaultLimit)
	assert.Equal(t, total, first.Pagination.Total)
	assert.Equal(t, 0, first.Pagination.Offset)

	second, err := admin.ListTasks(ctx, models.TaskOrderDueDate, 2)
	require.NoError(t, err)
	require.Len(t, second.Rows, 1)
	assert.Equal(t, total, second.Pagination.Total)
	assert.Equal(t, models.DefaultLimit, second.Pagination.Offset)
	assert.Equal(t, start.AddDate(0, 0, total-1).Format(models.DueDateLayout), second.Rows[0].DueDate)

	projects, err := admin.ListProjects(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, projects.Pagination.Total)
}

func TestToggleTask(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()
	ctx := suite.Context()
	admin := suite.Admin()

	projectID := createProject(t, suite, admin, "Chores")
	taskID := createTask(t, suite, admin, projectID, handlers.TaskParams{
		Text: "Dishes", DueDate: "2024-01-01", AssigneeID: models.AdminID,
	})

	isComplete := func() bool {
		detail, err := admin.GetTask(ctx, taskID)
		require.NoError(t, err)
		return detail.Task.IsComplete
	}

	location, err := admin.MarkMyTask(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, routes.CurrentUserTasksURL(""), location)
	assert.True(t, isComplete())

	_, err = admin.MarkMyTask(ctx, taskID)
	require.NoError(t, err)
	assert.False(t, isComplete(), "toggling twice restores the original value")
}

func TestTaskValidation(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()
	ctx := suite.Context()
	admin := suite.Admin()
	projectID := createProject(t, suite, admin, "Checks")

	tests := []struct {
		name   string
		params handlers.TaskParams
	}{
		{name: "missing text", params: handlers.TaskParams{DueDate: "2024-01-01", AssigneeID: models.AdminID}},
		{name: "bad date", params: handlers.TaskParams{Text: "x", DueDate: "01/01/2024", AssigneeID: models.AdminID}},
		{name: "missing assignee", params: handlers.TaskParams{Text: "x", DueDate: "2024-01-01"}},
		{name: "unknown assignee", params: handlers.TaskParams{Text: "x", DueDate: "2024-01-01", AssigneeID: 999}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, statusOf(t, func() error {
				_, err := admin.CreateTask(ctx, projectID, tt.params)
				return err
			}))
		})
	}

	detail, err := admin.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Empty(t, detail.Tasks)
}

func TestTaskForms(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()
	ctx := suite.Context()
	admin := suite.Admin()
	projectID := createProject(t, suite, admin, "Forms")

	form, err := admin.GetNewTaskForm(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, projectID, form.ProjectID)
	assert.Nil(t, form.Task)
	assert.Len(t, form.AssigneeChoices, 2, "admin and guest")

	taskID := createTask(t, suite, admin, projectID, handlers.TaskParams{
		Text: "Draft", DueDate: "2024-06-01", AssigneeID: models.AdminID,
	})
	form, err = admin.GetTaskForm(ctx, taskID)
	require.NoError(t, err)
	require.NotNil(t, form.Task)
	assert.Equal(t, "Draft", form.Task.Text)

	guest := suite.Guest()
	location, err := admin.UpdateTask(ctx, taskID, handlers.TaskParams{Text: "Final", DueDate: "2024-07-01", AssigneeID: guest.ID})
	require.NoError(t, err)
	assert.Equal(t, routes.ShowProjectURL(projectID), location)

	detail, err := admin.GetTask(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, "Final", detail.Task.Text)
	assert.Equal(t, "2024-07-01", detail.Task.DueDate)
	assert.Equal(t, guest.ID, detail.Task.AssigneeID)
}

func TestGuestAssignsOnlyItself(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()
	ctx := suite.Context()

	guest := suite.NewClient()
	_, err := guest.LoginAsGuest(ctx)
	require.NoError(t, err)
	guestUser := suite.Guest()

	projectID := createProject(t, suite, guest, "Demo")

	form, err := guest.GetNewTaskForm(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, form.AssigneeChoices, 1)
	assert.Equal(t, guestUser.ID, form.AssigneeChoices[0].ID)

	assert.Equal(t, http.StatusBadRequest, statusOf(t, func() error {
		_, err := guest.CreateTask(ctx, projectID, handlers.TaskParams{Text: "x", DueDate: "2024-01-01", AssigneeID: models.AdminID})
		return err
	}))

	createTask(t, suite, guest, projectID, handlers.TaskParams{Text: "mine", DueDate: "2024-01-01", AssigneeID: guestUser.ID})
}

func TestDeleteTaskCascadesComments(t *testing.T) {
	suite := test.NewSuite(t)
	defer suite.Cleanup()
	ctx := suite.Context()
	admin := suite.Admin()

	projectID := createProject(t, suite, admin, "Cleanup")
	taskID := createTask(t, suite, admin, projectID, handlers.TaskParams{
		Text: "Temporary", DueDate: "2024-01-01", AssigneeID: models.AdminID,
	})
	commentID := addComment(t, suite, admin, taskID, "note")

	location, err := admin.DeleteTask(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, routes.ShowProjectURL(projectID), location)

	assert.Equal(t, http.StatusNotFound, statusOf(t, func() error {
		_, err := admin.GetTask(ctx, taskID)
		return err
	}))
	_, err = suite.CommentRepo.GetByID(ctx, commentID)
	assert.Error(t, err, "comments go with their task")

	detail, err := admin.GetProject(ctx, projectID)
	require.NoError(t, err)
	assert.Empty(t, detail.Tasks)
}
