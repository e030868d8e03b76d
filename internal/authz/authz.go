// Package authz declares the access rules guarding routes. A Rule pairs an
// explicit resource lookup with a predicate over the current user.
package authz

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/celestiaorg/taskboard/internal/db/models"
)

var (
	// ErrForbidden is returned when the user fails a rule
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the guarded resource does not exist
	ErrNotFound = errors.New("not found")
)

// CheckFunc evaluates a rule for user against the resource identified by resourceID
type CheckFunc func(ctx context.Context, user *models.User, resourceID uint) error

// Rule is a named access rule
type Rule struct {
	Name  string
	Check CheckFunc
}

// Allow runs the rule. It returns nil, ErrNotFound or ErrForbidden; other
// errors come from the lookup itself.
func (r Rule) Allow(ctx context.Context, user *models.User, resourceID uint) error {
	if user == nil {
		return fmt.Errorf("%s: %w", r.Name, ErrForbidden)
	}
	return r.Check(ctx, user, resourceID)
}

// LookupFunc loads a resource by ID
type LookupFunc[T any] func(ctx context.Context, id uint) (*T, error)

// Lookup wraps fn so a missing record is reported as ErrNotFound
func Lookup[T any](fn func(ctx context.Context, id uint) (*T, error)) LookupFunc[T] {
	return func(ctx context.Context, id uint) (*T, error) {
		res, err := fn(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return res, err
	}
}

// AdminOnly allows only the administrator
func AdminOnly() Rule {
	return Rule{
		Name: "admin-only",
		Check: func(_ context.Context, user *models.User, _ uint) error {
			if !user.IsAdmin() {
				return ErrForbidden
			}
			return nil
		},
	}
}

// OwnedBy allows the user whose ID is returned by owner for the looked up resource
func OwnedBy[T any](name string, lookup LookupFunc[T], owner func(*T) uint) Rule {
	return Rule{
		Name: name,
		Check: func(ctx context.Context, user *models.User, id uint) error {
			res, err := lookup(ctx, id)
			if err != nil {
				return err
			}
			if owner(res) != user.ID {
				return ErrForbidden
			}
			return nil
		},
	}
}
