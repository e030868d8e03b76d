package services

import (
	"context"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/db/repos"
)

// User provides business logic for user operations
type User struct {
	repo *repos.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(repo *repos.UserRepository) *User {
	return &User{
		repo: repo,
	}
}

// List retrieves all users ordered by ID
func (s *User) List(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	return s.repo.GetUsers(ctx, opts)
}

// Count returns the number of users List pages through
func (s *User) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Get retrieves a user by id
func (s *User) Get(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// Lookup returns the users with the given IDs keyed by ID
func (s *User) Lookup(ctx context.Context, ids ...uint) (map[uint]models.User, error) {
	return s.repo.GetUsersByIDs(ctx, ids)
}
