package test

import (
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/celestiaorg/taskboard/internal/app"
	"github.com/celestiaorg/taskboard/internal/session"
	"github.com/celestiaorg/taskboard/pkg/api/v1/client"
)

// testClientTimeout is the timeout for test API client requests
const testClientTimeout = 5 * time.Second

// testSecretKey keys the cookie encryption of the test server
const testSecretKey = "test-secret-key"

// SetupServer configures the test suite with a real API server
func SetupServer(suite *Suite) {
	sessions := session.New(session.Options{})

	application, err := app.NewApp(app.Options{
		DB:         suite.DB,
		Sessions:   sessions,
		SecretKey:  testSecretKey,
		GuestEmail: GuestEmail,
	})
	suite.Require().NoError(err, "Failed to build application")
	suite.App = application

	// Create test server using adaptor to convert Fiber app to http.Handler
	suite.Server = httptest.NewServer(adaptor.FiberApp(application.Fiber))

	suite.APIClient = suite.NewClient()

	// Update cleanup to close server
	originalCleanup := suite.cleanup
	suite.cleanup = func() {
		if suite.Server != nil {
			suite.Server.Close()
		}
		if originalCleanup != nil {
			originalCleanup()
		}
	}
}

// NewClient returns an anonymous API client for the test server. Each client
// carries its own session.
func (s *Suite) NewClient() *client.APIClient {
	c, err := client.NewClient(&client.Options{
		BaseURL: s.Server.URL,
		Timeout: testClientTimeout,
	})
	s.Require().NoError(err, "Failed to create API client")
	return c
}
