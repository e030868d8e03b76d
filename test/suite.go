package test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/celestiaorg/taskboard/internal/app"
	"github.com/celestiaorg/taskboard/internal/constants"
	"github.com/celestiaorg/taskboard/internal/db"
	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/db/repos"
	"github.com/celestiaorg/taskboard/pkg/api/v1/client"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
)

// DefaultTestTimeout is the default timeout for test suites.
const DefaultTestTimeout = 30 * time.Second

// Seeded accounts
const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin-password"
	AdminName     = "Admin"
	GuestEmail    = constants.DefaultGuestEmail

	// DefaultPassword is the password of users made by CreateUser
	DefaultPassword = "password123"
)

// Suite encapsulates all components needed for integration testing.
// It provides a complete test setup with:
//   - File-based sqlite database with the admin and guest accounts seeded
//   - Real API server
//   - Real API client, not logged in
type Suite struct {
	t *testing.T // The testing.T instance for this suite

	// Server components
	App    *app.App
	Server *httptest.Server

	// Client components
	APIClient *client.APIClient

	// Database components
	DB          *gorm.DB
	UserRepo    *repos.UserRepository
	ProjectRepo *repos.ProjectRepository
	TaskRepo    *repos.TaskRepository
	CommentRepo *repos.CommentRepository

	// Context management
	ctx        context.Context
	cancelFunc context.CancelFunc

	// Cleanup function
	cleanup func()
}

// SetS sets the suite instance for this suite
func (s *Suite) SetS(_ suite.TestingSuite) {
	// This method is required by suite.TestingSuite but we don't need to do anything here
}

// SetT sets the testing.T instance for this suite
func (s *Suite) SetT(t *testing.T) {
	s.t = t
}

// T returns the testing.T instance for this suite
func (s *Suite) T() *testing.T {
	return s.t
}

// NewSuite creates a new test suite.
// The suite must be cleaned up after use by calling Cleanup.
func NewSuite(t *testing.T) *Suite {
	t.Helper()

	// Create suite with default timeout
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)

	suite := &Suite{
		t:          t,
		ctx:        ctx,
		cancelFunc: cancel,
	}

	// Initialize cleanup function
	suite.cleanup = func() {
		if suite.cancelFunc != nil {
			suite.cancelFunc()
		}
	}

	// Setup database by default
	SetupTestDB(suite, nil)

	err := db.Seed(ctx, suite.DB, db.SeedOptions{
		AdminEmail:    AdminEmail,
		AdminPassword: AdminPassword,
		AdminName:     AdminName,
		GuestEmail:    GuestEmail,
	})
	suite.Require().NoError(err, "Failed to seed accounts")

	// Setup server by default
	SetupServer(suite)

	return suite
}

// Cleanup tears down the test suite, releasing all resources.
// This should be deferred immediately after creating the suite.
func (s *Suite) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Context returns the suite's context, which is automatically
// canceled when the suite is cleaned up.
func (s *Suite) Context() context.Context {
	return s.ctx
}

// Require returns a require.Assertions instance for this suite.
// This is a convenience method to avoid passing t around.
func (s *Suite) Require() *require.Assertions {
	return require.New(s.t)
}

// CreateUser stores a user with DefaultPassword
func (s *Suite) CreateUser(email, name string) *models.User {
	user := &models.User{Email: email, Name: name}
	s.Require().NoError(user.SetPassword(DefaultPassword))
	s.Require().NoError(s.UserRepo.CreateUser(s.ctx, user), "Failed to create user %s", email)
	return user
}

// LoginAs returns a new client logged in with the given credentials
func (s *Suite) LoginAs(email, password string) *client.APIClient {
	c := s.NewClient()
	_, err := c.Login(s.ctx, handlers.LoginParams{Email: email, Password: password})
	s.Require().NoError(err, "Failed to log in as %s", email)
	return c
}

// Admin returns a new client logged in as the administrator
func (s *Suite) Admin() *client.APIClient {
	return s.LoginAs(AdminEmail, AdminPassword)
}

// Guest returns the guest user
func (s *Suite) Guest() *models.User {
	guest, err := s.UserRepo.GetUserByEmail(s.ctx, GuestEmail)
	s.Require().NoError(err, "Guest account missing")
	return guest
}
