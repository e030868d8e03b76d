// This file is used to run database migrations
// How to run:
// go run cmd/migrate/main.go              # Run all pending migrations
// go run cmd/migrate/main.go -down        # Rollback all migrations
// go run cmd/migrate/main.go -steps 1     # Run one migration
// go run cmd/migrate/main.go -steps -1    # Rollback one migration
// go run cmd/migrate/main.go -force 1     # Force version 1
package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/celestiaorg/taskboard/internal/config"
	"github.com/celestiaorg/taskboard/internal/constants"
	"github.com/celestiaorg/taskboard/internal/db"
	"github.com/celestiaorg/taskboard/internal/db/migrations"
	"github.com/celestiaorg/taskboard/internal/logger"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatalf("Error loading .env file: %v", err)
	}
	logger.InitializeAndConfigure(
		config.GetEnv(constants.EnvLogLevel, config.DefaultLogLevel),
		config.GetEnv(constants.EnvLogFormat, "text"),
	)

	var (
		dbURLFlag = flag.String("db", "", "Database URL (optional, defaults to DATABASE_URL)")
		migPath   = flag.String("path", "", "Migration source URL, e.g. file://migrations (defaults to the embedded migrations)")
		down      = flag.Bool("down", false, "Roll back migrations")
		steps     = flag.Int("steps", 0, "Number of migrations to apply (up or down)")
		force     = flag.Int("force", -1, "Force a specific version")
		retries   = flag.Int("retries", 5, "Number of connection retries")
		retryWait = flag.Duration("retry-wait", 3*time.Second, "Wait time between retries")
	)
	flag.Parse()

	// Use command line flag if provided, otherwise use env vars
	dbURL := os.Getenv(constants.EnvDatabaseURL)
	if *dbURLFlag != "" {
		dbURL = *dbURLFlag
	}
	if dbURL == "" || db.IsSQLite(dbURL) {
		logger.Fatal("Versioned migrations need a postgres DATABASE_URL; sqlite databases are migrated by the server at startup")
	}

	config := migrations.Config{
		MigrationsPath: *migPath,
		DatabaseURL:    dbURL,
		RetryAttempts:  *retries,
		RetryDelay:     *retryWait,
	}

	service, err := migrations.NewMigrationService(config)
	if err != nil {
		logger.Fatalf("Failed to create migration service: %v", err)
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.Warnf("Failed to close migration service: %v", err)
		}
	}()

	switch {
	case *force >= 0:
		if err := service.Force(*force); err != nil {
			logger.Fatalf("Failed to force version %d: %v", *force, err)
		}
		logger.Infof("Successfully forced version to %d", *force)
		return
	case *steps != 0:
		if err := service.Steps(*steps); err != nil {
			logger.Fatalf("Failed to apply %d steps: %v", *steps, err)
		}
		logger.Infof("Successfully applied %d steps", *steps)
		return
	case *down:
		if err := service.Down(); err != nil {
			logger.Fatalf("Migration rollback failed: %v", err)
		}
	default:
		if err := service.Up(); err != nil {
			logger.Fatalf("Migration failed: %v", err)
		}
	}

	version, dirty, err := service.Version()
	if err != nil {
		logger.Warnf("Could not get final version: %v", err)
	} else {
		logger.Infof("Current migration version: %d (dirty: %v)", version, dirty)
	}
}
