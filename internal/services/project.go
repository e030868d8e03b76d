package services

import (
	"context"
	"strings"
	"time"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/db/repos"
	"github.com/celestiaorg/taskboard/internal/logger"
)

// ProjectInput carries the editable fields of a project
type ProjectInput struct {
	Title       string
	Description string
}

// ProjectDetail is a project with its tasks and every user they reference
type ProjectDetail struct {
	Project models.Project
	Tasks   []models.Task
	Users   map[uint]models.User
}

// Project handles project-related operations
type Project struct {
	projects *repos.ProjectRepository
	tasks    *repos.TaskRepository
	users    *repos.UserRepository
	now      func() time.Time
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(projects *repos.ProjectRepository, tasks *repos.TaskRepository, users *repos.UserRepository) *Project {
	return &Project{
		projects: projects,
		tasks:    tasks,
		users:    users,
		now:      time.Now,
	}
}

func validateProject(in ProjectInput) (ProjectInput, error) {
	v := &ValidationError{}
	in.Title = requireText(v, "title", in.Title, models.MaxProjectTitleLength)
	in.Description = strings.TrimSpace(in.Description)
	return in, v.Err()
}

// Create creates a new project owned by creatorID, dated today
func (s *Project) Create(ctx context.Context, creatorID uint, in ProjectInput) (*models.Project, error) {
	in, err := validateProject(in)
	if err != nil {
		return nil, err
	}
	project := &models.Project{
		Title:       in.Title,
		Description: in.Description,
		Date:        models.FormatProjectDate(s.now()),
		CreatorID:   creatorID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	logger.DebugWithFields("project created", map[string]interface{}{
		"project_id": project.ID,
		"creator_id": creatorID,
	})
	return project, nil
}

// Get retrieves a project by ID
func (s *Project) Get(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return project, nil
}

// Detail retrieves a project with its tasks in insertion order
func (s *Project) Detail(ctx context.Context, id uint) (*ProjectDetail, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	ids := []uint{project.CreatorID}
	for _, t := range tasks {
		ids = append(ids, t.CreatorID, t.AssigneeID)
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{Project: *project, Tasks: tasks, Users: users}, nil
}

// Update replaces the title and description of a project
func (s *Project) Update(ctx context.Context, id uint, in ProjectInput) (*models.Project, error) {
	in, err := validateProject(in)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.Update(ctx, id, func(p *models.Project) error {
		p.Title = in.Title
		p.Description = in.Description
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return project, nil
}

// Delete deletes a project with its tasks and their comments
func (s *Project) Delete(ctx context.Context, id uint) error {
	if err := s.projects.DeleteCascade(ctx, id); err != nil {
		return notFound(err)
	}
	logger.DebugWithFields("project deleted", map[string]interface{}{"project_id": id})
	return nil
}

// ListForUser lists the projects userID created or holds a task in
func (s *Project) ListForUser(ctx context.Context, userID uint, opts *models.ListOptions) ([]models.Project, error) {
	return s.projects.ListForUser(ctx, userID, opts)
}

// CountForUser counts the projects ListForUser pages through
func (s *Project) CountForUser(ctx context.Context, userID uint) (int64, error) {
	return s.projects.CountForUser(ctx, userID)
}
