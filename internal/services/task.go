package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/db/repos"
	"github.com/celestiaorg/taskboard/internal/logger"
)

// TaskInput carries the editable fields of a task
type TaskInput struct {
	Text       string
	DueDate    string
	AssigneeID uint
}

// TaskDetail is a task with its project, its comments and every user they reference
type TaskDetail struct {
	Task     models.Task
	Project  models.Project
	Comments []models.Comment
	Users    map[uint]models.User
}

// Task handles task-related operations
type Task struct {
	tasks    *repos.TaskRepository
	projects *repos.ProjectRepository
	users    *repos.UserRepository
	comments *repos.CommentRepository
	auth     *Auth
}

// NewTaskService creates a new task service instance
func NewTaskService(
	tasks *repos.TaskRepository,
	projects *repos.ProjectRepository,
	users *repos.UserRepository,
	comments *repos.CommentRepository,
	auth *Auth,
) *Task {
	return &Task{
		tasks:    tasks,
		projects: projects,
		users:    users,
		comments: comments,
		auth:     auth,
	}
}

// validate checks in and resolves the assignee. The guest may only assign
// tasks to itself.
func (s *Task) validate(ctx context.Context, actor *models.User, in TaskInput) (TaskInput, error) {
	v := &ValidationError{}
	in.Text = requireText(v, "text", in.Text, models.MaxTaskTextLength)
	in.DueDate = requireDueDate(v, in.DueDate)

	switch {
	case in.AssigneeID == 0:
		v.Add("assignee_id", "this field is required")
	case s.auth.IsGuest(actor) && in.AssigneeID != actor.ID:
		v.Add("assignee_id", "guest can only assign tasks to itself")
	default:
		_, err := s.users.GetUserByID(ctx, in.AssigneeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v.Add("assignee_id", "unknown user")
		} else if err != nil {
			return in, err
		}
	}
	return in, v.Err()
}

// Create adds a task created by creator to a project
func (s *Task) Create(ctx context.Context, creator *models.User, projectID uint, in TaskInput) (*models.Task, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, notFound(err)
	}
	in, err := s.validate(ctx, creator, in)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Text:       in.Text,
		DueDate:    in.DueDate,
		CreatorID:  creator.ID,
		AssigneeID: in.AssigneeID,
		ProjectID:  projectID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	logger.DebugWithFields("task created", map[string]interface{}{
		"task_id":     task.ID,
		"project_id":  projectID,
		"assignee_id": task.AssigneeID,
	})
	return task, nil
}

// Get retrieves a task by ID
func (s *Task) Get(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

// Detail retrieves a task with its project and comments
func (s *Task) Detail(ctx context.Context, id uint) (*TaskDetail, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.Get(ctx, task.ProjectID)
	if err != nil {
		return nil, notFound(err)
	}
	comments, err := s.comments.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := []uint{task.CreatorID, task.AssigneeID, project.CreatorID}
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &TaskDetail{Task: *task, Project: *project, Comments: comments, Users: users}, nil
}

// Update replaces the text, due date and assignee of a task
func (s *Task) Update(ctx context.Context, editor *models.User, id uint, in TaskInput) (*models.Task, error) {
	in, err := s.validate(ctx, editor, in)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.Update(ctx, id, func(t *models.Task) error {
		t.Text = in.Text
		t.DueDate = in.DueDate
		t.AssigneeID = in.AssigneeID
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

// UpdateDueDate moves the due date of a task
func (s *Task) UpdateDueDate(ctx context.Context, id uint, dueDate string) (*models.Task, error) {
	v := &ValidationError{}
	dueDate = requireDueDate(v, dueDate)
	if err := v.Err(); err != nil {
		return nil, err
	}
	task, err := s.tasks.Update(ctx, id, func(t *models.Task) error {
		t.DueDate = dueDate
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

// Toggle flips the completion flag of a task
func (s *Task) Toggle(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.tasks.Toggle(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

// Delete deletes a task and its comments, returning the deleted task
func (s *Task) Delete(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.tasks.DeleteCascade(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	logger.DebugWithFields("task deleted", map[string]interface{}{
		"task_id":    id,
		"project_id": task.ProjectID,
	})
	return task, nil
}

// ListAssigned lists one page of the incomplete tasks assigned to userID.
// sortBy is one of due_date (the default), project or creator.
func (s *Task) ListAssigned(ctx context.Context, userID uint, sortBy string, opts *models.ListOptions) ([]models.Task, error) {
	order, err := models.ParseTaskOrder(sortBy)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{
			"sort_by": "must be one of due_date, project, creator",
		}}
	}
	return s.tasks.ListAssigned(ctx, userID, order, opts)
}

// CountAssigned counts the tasks ListAssigned pages through
func (s *Task) CountAssigned(ctx context.Context, userID uint) (int64, error) {
	return s.tasks.CountAssigned(ctx, userID)
}

// AssigneeChoices lists every user actor may assign a task to
func (s *Task) AssigneeChoices(ctx context.Context, actor *models.User) ([]models.User, error) {
	if s.auth.IsGuest(actor) {
		return []models.User{*actor}, nil
	}
	return s.users.ListAll(ctx)
}
