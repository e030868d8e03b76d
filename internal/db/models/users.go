package models

import (
	"encoding/json"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/celestiaorg/taskboard/internal/avatar"
)

// AdminID is the ID of the administrator: the first account ever created
const AdminID uint = 1

// Field limits shared by validation and the schema
const (
	MaxEmailLength = 100
	MaxNameLength  = 100
)

// User represents an account in the system
type User struct {
	Model
	Email        string `json:"email" gorm:"size:100;not null;uniqueIndex"`
	Name         string `json:"name" gorm:"size:100;not null"`
	PasswordHash string `json:"-" gorm:"size:100;not null"`
}

// IsAdmin reports whether u is the administrator
func (u *User) IsAdmin() bool {
	return u != nil && u.ID == AdminID
}

// SetPassword replaces the stored hash with a bcrypt hash of password
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// MarshalJSON adds the avatar URL to the serialized user
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User // Create an alias to avoid infinite recursion
	return json.Marshal(struct {
		Alias
		AvatarURL string `json:"avatar_url"`
	}{
		Alias:     Alias(u),
		AvatarURL: avatar.Default(u.Email),
	})
}

// BeforeCreate is a GORM hook that rejects users without credentials
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.Email == "" {
		return errors.New("user email cannot be empty")
	}
	if u.PasswordHash == "" {
		return errors.New("user password hash cannot be empty")
	}
	return nil
}
