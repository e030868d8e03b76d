package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/taskboard/internal/db"
	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/db/repos"
)

const testGuestEmail = "guest@email.com"

// TestSetup holds the services under test wired to a throwaway sqlite database
type TestSetup struct {
	DB             *gorm.DB
	UserRepo       *repos.UserRepository
	ProjectRepo    *repos.ProjectRepository
	TaskRepo       *repos.TaskRepository
	CommentRepo    *repos.CommentRepository
	AuthService    *Auth
	UserService    *User
	ProjectService *Project
	TaskService    *Task
	CommentService *Comment
	ctx            context.Context
	t              *testing.T
}

// NewTestSetup creates a new test setup with a file database in a temp dir
func NewTestSetup(t *testing.T) *TestSetup {
	conn, err := db.New(db.Options{
		URL:      filepath.Join(t.TempDir(), "services.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err, "Failed to create test database")

	userRepo := repos.NewUserRepository(conn)
	projectRepo := repos.NewProjectRepository(conn)
	taskRepo := repos.NewTaskRepository(conn)
	commentRepo := repos.NewCommentRepository(conn)

	auth := NewAuthService(userRepo, testGuestEmail)
	projectService := NewProjectService(projectRepo, taskRepo, userRepo)
	projectService.now = func() time.Time {
		return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	}

	ts := &TestSetup{
		DB:             conn,
		UserRepo:       userRepo,
		ProjectRepo:    projectRepo,
		TaskRepo:       taskRepo,
		CommentRepo:    commentRepo,
		AuthService:    auth,
		UserService:    NewUserService(userRepo),
		ProjectService: projectService,
		TaskService:    NewTaskService(taskRepo, projectRepo, userRepo, commentRepo, auth),
		CommentService: NewCommentService(commentRepo, taskRepo),
		ctx:            context.Background(),
		t:              t,
	}
	t.Cleanup(ts.CleanUp)
	return ts
}

// CleanUp cleans up resources after test
func (ts *TestSetup) CleanUp() {
	_ = db.Close(ts.DB)
}

// createUser registers a user; the first one created is the administrator
func (ts *TestSetup) createUser(name string) *models.User {
	user, err := ts.AuthService.Register(ts.ctx, fmt.Sprintf("%s@example.com", name), "password-"+name, name)
	require.NoError(ts.t, err)
	return user
}

func (ts *TestSetup) createGuest() *models.User {
	user, err := ts.AuthService.Register(ts.ctx, testGuestEmail, "unused", "Guest")
	require.NoError(ts.t, err)
	return user
}

func (ts *TestSetup) createProject(creator *models.User, title string) *models.Project {
	project, err := ts.ProjectService.Create(ts.ctx, creator.ID, ProjectInput{Title: title})
	require.NoError(ts.t, err)
	return project
}

func (ts *TestSetup) createTask(creator *models.User, project *models.Project, assignee *models.User, dueDate string) *models.Task {
	task, err := ts.TaskService.Create(ts.ctx, creator, project.ID, TaskInput{
		Text:       "task due " + dueDate,
		DueDate:    dueDate,
		AssigneeID: assignee.ID,
	})
	require.NoError(ts.t, err)
	return task
}
