package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/db/repos"
	"github.com/celestiaorg/taskboard/internal/logger"
)

// dummyHash is compared against when the account does not exist so a
// failed login costs the same either way
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("taskboard-dummy-password"), bcrypt.DefaultCost)

// Auth provides registration, login and guest access
type Auth struct {
	users      *repos.UserRepository
	guestEmail string
}

// NewAuthService creates a new auth service instance
func NewAuthService(users *repos.UserRepository, guestEmail string) *Auth {
	return &Auth{
		users:      users,
		guestEmail: strings.TrimSpace(guestEmail),
	}
}

// Register validates the input and stores a new user with a bcrypt password hash
func (s *Auth) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	v := &ValidationError{}
	email = requireText(v, "email", email, models.MaxEmailLength)
	if email != "" && !strings.Contains(email, "@") {
		v.Add("email", "must be an email address")
	}
	if password == "" {
		v.Add("password", "this field is required")
	}
	name = requireText(v, "name", name, models.MaxNameLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	user := &models.User{Email: email, Name: name}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repos.ErrEmailExists) {
			return nil, errors.Join(ErrDuplicateEmail, err)
		}
		return nil, err
	}

	logger.InfoWithFields("user registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// Login returns the user matching the credentials. Every failure to match
// yields ErrInvalidCredentials, whether the account is absent or the password
// is wrong.
func (s *Auth) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		v := &ValidationError{}
		if email == "" {
			v.Add("email", "this field is required")
		}
		if password == "" {
			v.Add("password", "this field is required")
		}
		return nil, v
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LoginAsGuest returns the seeded guest account
func (s *Auth) LoginAsGuest(ctx context.Context) (*models.User, error) {
	if s.guestEmail == "" {
		return nil, ErrGuestNotProvisioned
	}
	user, err := s.users.GetUserByEmail(ctx, s.guestEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Join(ErrGuestNotProvisioned, err)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IsGuest reports whether user is the guest account
func (s *Auth) IsGuest(user *models.User) bool {
	return user != nil && s.guestEmail != "" && user.Email == s.guestEmail
}

// CurrentUser loads the user bound to a session
func (s *Auth) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}
