// Package db provides database connectivity and operations
package db

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/logger"
)

// DefaultURL is the database used when none is configured: a local sqlite file
const DefaultURL = "taskboard.db"

const sqlitePrefix = "sqlite://"

// Options represents database connection configuration options
type Options struct {
	// URL is either a postgres URL/DSN or a sqlite file path (optionally
	// prefixed with sqlite://)
	URL      string
	LogLevel gormlogger.LogLevel
	// SkipAutoMigrate leaves schema management to the migrate binary
	SkipAutoMigrate bool
}

// New creates a new database connection with the given options
func New(opts Options) (*gorm.DB, error) {
	opts = setDefaults(opts)

	// Configure custom logger to ignore record not found errors
	newLogger := gormlogger.New(
		log.New(logger.Writer(), "", 0),
		gormlogger.Config{
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
		},
	)

	config := &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	}

	db, err := gorm.Open(Dialector(opts.URL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if IsSQLite(opts.URL) {
		// sqlite does not enforce foreign keys or tolerate concurrent writers by default
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if !opts.SkipAutoMigrate {
		if err := migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Dialector picks the gorm driver for url
func Dialector(url string) gorm.Dialector {
	if IsSQLite(url) {
		return sqlite.Open(strings.TrimPrefix(url, sqlitePrefix))
	}
	return postgres.Open(url)
}

// IsSQLite reports whether url designates a sqlite database
func IsSQLite(url string) bool {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return false
	case strings.Contains(url, "host="):
		return false
	default:
		return true
	}
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsDuplicateKeyError checks if the given error is a unique constraint violation
func IsDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return errors.Is(postgres.Dialector{}.Translate(err), gorm.ErrDuplicatedKey)
}

func setDefaults(opts Options) Options {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = gormlogger.Warn
	}
	return opts
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
