// Package models contains PUBLIC aliases for the persisted entities, for
// consumers of the API client outside this module.
package models

import (
	internalmodels "github.com/celestiaorg/taskboard/internal/db/models"
)

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing API call
	DefaultLimit = internalmodels.DefaultLimit
	// AdminID is the ID of the administrator account
	AdminID = internalmodels.AdminID
	// DueDateLayout is the format of task due dates
	DueDateLayout = internalmodels.DueDateLayout
	// DayLayout is the month and day format of the home page
	DayLayout = internalmodels.DayLayout
)

// Model is the common ID and timestamp block of every entity
type Model = internalmodels.Model

// ListOptions represents pagination options for list operations
type ListOptions = internalmodels.ListOptions

// User is an account
type User = internalmodels.User

// Project is a container of tasks owned by its creator
type Project = internalmodels.Project

// Task is a unit of work inside a project
type Task = internalmodels.Task

// Comment is a note left on a task
type Comment = internalmodels.Comment

// TaskOrder selects the ordering of a task listing
type TaskOrder = internalmodels.TaskOrder

// Task orderings
const (
	TaskOrderDueDate = internalmodels.TaskOrderDueDate
	TaskOrderProject = internalmodels.TaskOrderProject
	TaskOrderCreator = internalmodels.TaskOrderCreator
)
