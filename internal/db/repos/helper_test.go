package repos

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/taskboard/internal/db"
	"github.com/celestiaorg/taskboard/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db          *gorm.DB
	ctx         context.Context
	userRepo    *UserRepository
	projectRepo *ProjectRepository
	taskRepo    *TaskRepository
	commentRepo *CommentRepository
	userSeq     int
}

func (s *DBRepositoryTestSuite) SetupTest() {
	conn, err := db.New(db.Options{
		URL:      filepath.Join(s.T().TempDir(), "repos.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(s.T(), err, "Failed to create test database")

	s.db = conn
	s.userRepo = NewUserRepository(s.db)
	s.projectRepo = NewProjectRepository(s.db)
	s.taskRepo = NewTaskRepository(s.db)
	s.commentRepo = NewCommentRepository(s.db)
	s.ctx = context.Background()
	s.userSeq = 0
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	_ = db.Close(s.db)
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) createTestUser() *models.User {
	s.userSeq++
	user := &models.User{
		Email:        fmt.Sprintf("user%d@example.com", s.userSeq),
		Name:         fmt.Sprintf("User %d", s.userSeq),
		PasswordHash: "hash",
	}
	s.Require().NoError(s.userRepo.CreateUser(s.ctx, user))
	return user
}

func (s *DBRepositoryTestSuite) createTestProject(creatorID uint) *models.Project {
	project := &models.Project{
		Title:     "test-project",
		Date:      "January 01, 2024",
		CreatorID: creatorID,
	}
	s.Require().NoError(s.projectRepo.Create(s.ctx, project))
	return project
}

func (s *DBRepositoryTestSuite) createTestTask(projectID, creatorID, assigneeID uint, dueDate string) *models.Task {
	task := &models.Task{
		Text:       "test-task",
		DueDate:    dueDate,
		CreatorID:  creatorID,
		AssigneeID: assigneeID,
		ProjectID:  projectID,
	}
	s.Require().NoError(s.taskRepo.Create(s.ctx, task))
	return task
}

func (s *DBRepositoryTestSuite) createTestComment(taskID, authorID uint) *models.Comment {
	comment := &models.Comment{Text: "looks good", TaskID: taskID, AuthorID: authorID}
	s.Require().NoError(s.commentRepo.Create(s.ctx, comment))
	return comment
}

// TestDBRepository runs the test suite for the DBRepository to verify no panic
func TestDBRepository(t *testing.T) {
	suite.Run(t, new(DBRepositoryTestSuite))
}
