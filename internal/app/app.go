// Package app assembles the fiber application from its dependencies
package app

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"

	"github.com/celestiaorg/taskboard/internal/api/v1/middleware"
	"github.com/celestiaorg/taskboard/internal/authz"
	"github.com/celestiaorg/taskboard/internal/db/repos"
	"github.com/celestiaorg/taskboard/internal/services"
	"github.com/celestiaorg/taskboard/pkg/api/v1/handlers"
	"github.com/celestiaorg/taskboard/pkg/api/v1/routes"
)

// AppName is reported by fiber at startup
const AppName = "taskboard"

// Options holds what the application is built from
type Options struct {
	DB         *gorm.DB
	Sessions   *session.Store
	SecretKey  string
	GuestEmail string
}

// App is the assembled application
type App struct {
	Fiber   *fiber.App
	API     *handlers.APIHandler
	Auth    *services.Auth
	Project *services.Project
	Task    *services.Task
	Comment *services.Comment
}

// CookieKey derives the cookie encryption key from the secret key
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// NewApp wires repositories, services, policy and routes into a fiber app
func NewApp(opts Options) (*App, error) {
	if opts.DB == nil {
		return nil, errors.New("database is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if opts.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}

	userRepo := repos.NewUserRepository(opts.DB)
	projectRepo := repos.NewProjectRepository(opts.DB)
	taskRepo := repos.NewTaskRepository(opts.DB)
	commentRepo := repos.NewCommentRepository(opts.DB)

	authService := services.NewAuthService(userRepo, opts.GuestEmail)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, commentRepo, authService)
	commentService := services.NewCommentService(commentRepo, taskRepo)
	policy := authz.NewPolicy(projectRepo, taskRepo)

	api := handlers.NewAPIHandler(authService, userService, projectService, taskService, commentService, opts.Sessions)

	f := fiber.New(fiber.Config{
		AppName:      AppName,
		Immutable:    true,
		ErrorHandler: handlers.ErrorHandler,
	})

	f.Use(recover.New())
	f.Use(encryptcookie.New(encryptcookie.Config{Key: CookieKey(opts.SecretKey)}))
	f.Use(middleware.Logger())

	routes.RegisterRoutes(f, api, policy, opts.Sessions, authService)

	return &App{
		Fiber:   f,
		API:     api,
		Auth:    authService,
		Project: projectService,
		Task:    taskService,
		Comment: commentService,
	}, nil
}
