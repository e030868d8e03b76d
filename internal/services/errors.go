package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/celestiaorg/taskboard/internal/authz"
)

// Service errors
var (
	ErrNotFound            = authz.ErrNotFound
	ErrForbidden           = authz.ErrForbidden
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrGuestNotProvisioned = errors.New("guest account is not provisioned")
)

// ValidationError lists the rejected input fields with a message for each
type ValidationError struct {
	Fields map[string]string
}

// Error implements error
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a field error
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Err returns e if any field failed, nil otherwise
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// notFound tags a missing record with ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(ErrNotFound, err)
	}
	return err
}
