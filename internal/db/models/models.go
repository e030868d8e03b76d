// Package models defines the persisted entities
package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the common primary key and timestamp block of every entity.
// Deletes are soft: rows with DeletedAt set are excluded from queries.
type Model struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing call
	DefaultLimit = 100
)

// All lists every persisted model in dependency order, for migrations
func All() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&Task{},
		&Comment{},
	}
}

// ListOptions represents pagination options for list operations
type ListOptions struct {
	Limit  int `json:"limit"`  // Number of items to return
	Offset int `json:"offset"` // Number of items to skip
}

// Normalize fills in defaults for a nil or zero-valued ListOptions
func (o *ListOptions) Normalize() *ListOptions {
	if o == nil {
		return &ListOptions{Limit: DefaultLimit}
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
