package types

import "github.com/celestiaorg/taskboard/internal/db/models"

// HomeResponse is the landing page document
type HomeResponse struct {
	Greeting    string       `json:"greeting"`
	Weekday     string       `json:"weekday"`
	Date        string       `json:"date"`
	CurrentUser *models.User `json:"current_user,omitempty"`
}

// ProjectView is a project with its creator resolved
type ProjectView struct {
	models.Project
	Creator *models.User `json:"creator,omitempty"`
}

// TaskView is a task with its creator and assignee resolved
type TaskView struct {
	models.Task
	Creator  *models.User `json:"creator,omitempty"`
	Assignee *models.User `json:"assignee,omitempty"`
}

// CommentView is a comment with its author resolved
type CommentView struct {
	models.Comment
	Author *models.User `json:"author,omitempty"`
}

// ProjectDetailResponse is the show-project document
type ProjectDetailResponse struct {
	Project ProjectView `json:"project"`
	Tasks   []TaskView  `json:"tasks"`
}

// TaskDetailResponse is the show-task document
type TaskDetailResponse struct {
	Task     TaskView      `json:"task"`
	Project  ProjectView   `json:"project"`
	Comments []CommentView `json:"comments"`
}

// TaskFormResponse carries the values and choices of a task form
type TaskFormResponse struct {
	ProjectID       uint          `json:"project_id"`
	Task            *models.Task  `json:"task,omitempty"`
	AssigneeChoices []models.User `json:"assignee_choices,omitempty"`
}

// UserLookup resolves users by ID. Missing users resolve to nil.
type UserLookup map[uint]models.User

// Get returns the user with the given ID, or nil
func (l UserLookup) Get(id uint) *models.User {
	u, ok := l[id]
	if !ok {
		return nil
	}
	return &u
}

// NewProjectView resolves the creator of p
func NewProjectView(p models.Project, users UserLookup) ProjectView {
	return ProjectView{Project: p, Creator: users.Get(p.CreatorID)}
}

// NewTaskView resolves the creator and assignee of t
func NewTaskView(t models.Task, users UserLookup) TaskView {
	return TaskView{Task: t, Creator: users.Get(t.CreatorID), Assignee: users.Get(t.AssigneeID)}
}

// NewCommentView resolves the author of c
func NewCommentView(c models.Comment, users UserLookup) CommentView {
	return CommentView{Comment: c, Author: users.Get(c.AuthorID)}
}
