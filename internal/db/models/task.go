package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for the task model
const (
	// TaskIsCompleteField is the column holding the completion flag
	TaskIsCompleteField = "is_complete"
	// TaskDueDateField is the column holding the due date
	TaskDueDateField = "due_date"
)

// DueDateLayout is the storage format of Task.DueDate. Lexical order of
// values in this layout matches chronological order.
const DueDateLayout = "2006-01-02"

// MaxTaskTextLength is the longest accepted task text
const MaxTaskTextLength = 100

// TaskOrder selects the ordering of a task listing
type TaskOrder string

// Task orderings
const (
	// TaskOrderDueDate orders by due date, earliest first
	TaskOrderDueDate TaskOrder = "due_date"
	// TaskOrderProject orders by project ID
	TaskOrderProject TaskOrder = "project"
	// TaskOrderCreator orders by creator ID
	TaskOrderCreator TaskOrder = "creator"
)

// ParseTaskOrder converts a sort_by value to a TaskOrder. The empty string
// selects TaskOrderDueDate.
func ParseTaskOrder(str string) (TaskOrder, error) {
	switch str {
	case "", string(TaskOrderDueDate):
		return TaskOrderDueDate, nil
	case string(TaskOrderProject):
		return TaskOrderProject, nil
	case string(TaskOrderCreator):
		return TaskOrderCreator, nil
	default:
		return TaskOrderDueDate, fmt.Errorf("invalid task order: %s", str)
	}
}

// Column returns the ORDER BY clause for the ordering. Ties are broken by ID.
func (o TaskOrder) Column() string {
	switch o {
	case TaskOrderProject:
		return "project_id ASC, id ASC"
	case TaskOrderCreator:
		return "creator_id ASC, id ASC"
	default:
		return "due_date ASC, id ASC"
	}
}

// Task is a unit of work inside a project, delegated to an assignee
type Task struct {
	Model
	Text       string `json:"text" gorm:"size:100;not null"`
	DueDate    string `json:"due_date" gorm:"size:10;not null;index"`
	IsComplete bool   `json:"is_complete" gorm:"not null;default:false"`
	CreatorID  uint   `json:"creator_id" gorm:"not null;index"`
	AssigneeID uint   `json:"assignee_id" gorm:"not null;index"`
	ProjectID  uint   `json:"project_id" gorm:"not null;index"`
}

// ParseDueDate parses a due date in DueDateLayout
func ParseDueDate(str string) (time.Time, error) {
	return time.Parse(DueDateLayout, str)
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	if t.Text == "" {
		return fmt.Errorf("task text cannot be empty")
	}
	if _, err := ParseDueDate(t.DueDate); err != nil {
		return fmt.Errorf("task due date %q is not in %s format", t.DueDate, DueDateLayout)
	}
	if t.ProjectID == 0 {
		return fmt.Errorf("task project_id cannot be 0")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	return t.Validate()
}
