package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/celestiaorg/taskboard/internal/app"
	"github.com/celestiaorg/taskboard/internal/config"
	"github.com/celestiaorg/taskboard/internal/db"
	"github.com/celestiaorg/taskboard/internal/logger"
	"github.com/celestiaorg/taskboard/internal/session"
)

func main() {
	// A missing .env file is fine: the environment may be set directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	logger.InitializeAndConfigure(cfg.LogLevel, cfg.LogFormat)

	conn, err := db.New(db.Options{URL: cfg.DatabaseURL})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	seed := db.SeedOptions{GuestEmail: cfg.GuestEmail}
	if cfg.Admin.Enabled() {
		seed.AdminEmail = cfg.Admin.Email
		seed.AdminPassword = cfg.Admin.Password
		seed.AdminName = cfg.Admin.Name
	}
	if err := db.Seed(context.Background(), conn, seed); err != nil {
		logger.Fatalf("Failed to seed accounts: %v", err)
	}

	store, storage, err := session.NewFromConfig(context.Background(), cfg.Session)
	if err != nil {
		logger.Fatalf("Failed to create session store: %v", err)
	}

	application, err := app.NewApp(app.Options{
		DB:         conn,
		Sessions:   store,
		SecretKey:  cfg.SecretKey,
		GuestEmail: cfg.GuestEmail,
	})
	if err != nil {
		logger.Fatalf("Failed to build application: %v", err)
	}

	go func() {
		logger.Infof("Listening on %s", cfg.ListenAddr)
		if err := application.Fiber.Listen(cfg.ListenAddr); err != nil {
			logger.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	if err := application.Fiber.Shutdown(); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	if storage != nil {
		if err := storage.Close(); err != nil {
			logger.Errorf("Failed to close session storage: %v", err)
		}
	}
	if err := db.Close(conn); err != nil {
		logger.Errorf("Failed to close database: %v", err)
	}
}
