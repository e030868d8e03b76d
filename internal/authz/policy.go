package authz

import (
	"context"

	"github.com/celestiaorg/taskboard/internal/db/models"
)

// ProjectFinder loads projects
type ProjectFinder interface {
	Get(ctx context.Context, id uint) (*models.Project, error)
}

// TaskFinder loads tasks and answers assignment queries
type TaskFinder interface {
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	HasAssignee(ctx context.Context, projectID, userID uint) (bool, error)
}

// Policy builds the rules over the project and task stores
type Policy struct {
	projects ProjectFinder
	tasks    TaskFinder
}

// NewPolicy creates a policy
func NewPolicy(projects ProjectFinder, tasks TaskFinder) *Policy {
	return &Policy{projects: projects, tasks: tasks}
}

func (p *Policy) project(ctx context.Context, id uint) (*models.Project, error) {
	return p.projects.Get(ctx, id)
}

func (p *Policy) task(ctx context.Context, id uint) (*models.Task, error) {
	return p.tasks.GetByID(ctx, id)
}

// Admin allows only the administrator
func (p *Policy) Admin() Rule {
	return AdminOnly()
}

// ProjectCreator allows the creator of the project
func (p *Policy) ProjectCreator() Rule {
	return OwnedBy("project-creator", Lookup(p.project), func(pr *models.Project) uint {
		return pr.CreatorID
	})
}

// TaskCreator allows the creator of the task
func (p *Policy) TaskCreator() Rule {
	return OwnedBy("task-creator", Lookup(p.task), func(t *models.Task) uint {
		return t.CreatorID
	})
}

// TaskAssignee allows the assignee of the task
func (p *Policy) TaskAssignee() Rule {
	return OwnedBy("task-assignee", Lookup(p.task), func(t *models.Task) uint {
		return t.AssigneeID
	})
}

// ProjectCollaborator allows the project creator and the assignee of any
// task in the project
func (p *Policy) ProjectCollaborator() Rule {
	return Rule{
		Name: "project-collaborator",
		Check: func(ctx context.Context, user *models.User, id uint) error {
			project, err := Lookup(p.project)(ctx, id)
			if err != nil {
				return err
			}
			return p.collaborates(ctx, user, project)
		},
	}
}

// TaskCollaborator applies the collaborator test to the task's project
func (p *Policy) TaskCollaborator() Rule {
	return Rule{
		Name: "task-collaborator",
		Check: func(ctx context.Context, user *models.User, id uint) error {
			task, err := Lookup(p.task)(ctx, id)
			if err != nil {
				return err
			}
			project, err := Lookup(p.project)(ctx, task.ProjectID)
			if err != nil {
				return err
			}
			return p.collaborates(ctx, user, project)
		},
	}
}

// IsCollaborator reports whether user may view project
func (p *Policy) IsCollaborator(ctx context.Context, user *models.User, project *models.Project) (bool, error) {
	if user == nil {
		return false, nil
	}
	if project.CreatorID == user.ID {
		return true, nil
	}
	return p.tasks.HasAssignee(ctx, project.ID, user.ID)
}

func (p *Policy) collaborates(ctx context.Context, user *models.User, project *models.Project) error {
	ok, err := p.IsCollaborator(ctx, user, project)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
