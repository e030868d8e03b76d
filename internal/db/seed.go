package db

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/logger"
)

// GuestName is the display name of the seeded guest account
const GuestName = "Guest"

// ErrAdminMissing is returned when the guest would be seeded before the administrator
var ErrAdminMissing = errors.New("administrator account does not exist")

// SeedOptions describes the accounts ensured at startup
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	GuestEmail    string
}

// Seed ensures the administrator (when configured) and the guest account exist.
// The administrator is only created in an empty users table so it receives
// models.AdminID; the guest is only created once the administrator exists.
func Seed(ctx context.Context, db *gorm.DB, opts SeedOptions) error {
	logger.Debug("Ensuring seeded accounts exist...")

	if opts.AdminEmail != "" {
		if err := SeedAdmin(ctx, db, opts.AdminEmail, opts.AdminPassword, opts.AdminName); err != nil {
			return err
		}
	}

	if opts.GuestEmail != "" {
		if err := SeedGuest(ctx, db, opts.GuestEmail); err != nil {
			if errors.Is(err, ErrAdminMissing) {
				logger.Warnf("Guest account %s not seeded: %v", opts.GuestEmail, err)
				return nil
			}
			return err
		}
	}

	logger.Debug("Seeded accounts check complete")
	return nil
}

// SeedAdmin creates the administrator in an empty users table
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password, name string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Unscoped().Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if count > 0 {
			return nil
		}

		admin := &models.User{Email: strings.TrimSpace(email), Name: name}
		if err := admin.SetPassword(password); err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		if admin.ID != models.AdminID {
			return fmt.Errorf("admin user created with ID %d, expected %d", admin.ID, models.AdminID)
		}
		logger.Infof("Created administrator %s", admin.Email)
		return nil
	})
}

// SeedGuest creates the guest account if it does not exist yet
func SeedGuest(ctx context.Context, db *gorm.DB, email string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin models.User
		err := tx.Where("id = ?", models.AdminID).First(&admin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminMissing
		}
		if err != nil {
			return fmt.Errorf("failed to look up administrator: %w", err)
		}

		password, err := randomPassword()
		if err != nil {
			return err
		}
		attrs := models.User{Name: GuestName}
		if err := attrs.SetPassword(password); err != nil {
			return fmt.Errorf("failed to hash guest password: %w", err)
		}

		var guest models.User
		result := tx.Where(models.User{Email: strings.TrimSpace(email)}).Attrs(attrs).FirstOrCreate(&guest)
		if result.Error != nil {
			return fmt.Errorf("failed to ensure guest user exists: %w", result.Error)
		}
		if guest.ID == models.AdminID {
			return fmt.Errorf("guest email %s belongs to the administrator", guest.Email)
		}
		if result.RowsAffected > 0 {
			logger.Infof("Created guest account %s", guest.Email)
		}
		return nil
	})
}

func randomPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate guest password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
