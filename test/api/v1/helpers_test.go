package api_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/taskboard/pkg/api/v1/client"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
	"github.com/celestiaorg/taskboard/test"
)

// createProject creates a project through c and returns its ID
func createProject(t *testing.T, suite *test.Suite, c client.Client, title string) uint {
	t.Helper()
	_, err := c.CreateProject(suite.Context(), handlers.ProjectParams{Title: title, Description: title + " description"})
	require.NoError(t, err)

	projects, err := c.ListProjects(suite.Context(), 1)
	require.NoError(t, err)
	for _, p := range projects.Rows {
		if p.Title == title {
			return p.ID
		}
	}
	t.Fatalf("project %q not listed after creation", title)
	return 0
}

// createTask adds a task to a project through c and returns its ID
func createTask(t *testing.T, suite *test.Suite, c client.Client, projectID uint, params handlers.TaskParams) uint {
	t.Helper()
	_, err := c.CreateTask(suite.Context(), projectID, params)
	require.NoError(t, err)

	detail, err := c.GetProject(suite.Context(), projectID)
	require.NoError(t, err)
	for _, task := range detail.Tasks {
		if task.Text == params.Text {
			return task.ID
		}
	}
	t.Fatalf("task %q not shown after creation", params.Text)
	return 0
}

// addComment comments on a task through c and returns the comment ID
func addComment(t *testing.T, suite *test.Suite, c client.Client, taskID uint, text string) uint {
	t.Helper()
	_, err := c.AddComment(suite.Context(), taskID, handlers.CommentParams{Text: text})
	require.NoError(t, err)

	detail, err := c.GetTask(suite.Context(), taskID)
	require.NoError(t, err)
	for _, comment := range detail.Comments {
		if comment.Text == text {
			return comment.ID
		}
	}
	t.Fatalf("comment %q not shown after creation", text)
	return 0
}

// statusOf runs call and returns the status the server answered with
func statusOf(t *testing.T, call func() error) int {
	t.Helper()
	err := call()
	require.Error(t, err)
	code := client.StatusCode(err)
	require.NotZero(t, code, "expected a server error, got %v", err)
	return code
}
