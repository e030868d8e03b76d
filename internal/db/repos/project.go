package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/celestiaorg/taskboard/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID
// Returns ErrRecordNotFound if the project doesn't exist
func (r *ProjectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// Update loads the project, applies mutate and saves it in one transaction.
// Nothing is written when mutate returns an error.
func (r *ProjectRepository) Update(ctx context.Context, id uint, mutate func(*models.Project) error) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, id).Error; err != nil {
			return err
		}
		if err := mutate(&project); err != nil {
			return err
		}
		return tx.Save(&project).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteCascade deletes the project together with its tasks and their
// comments in one transaction
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("project not found: %w", gorm.ErrRecordNotFound)
		}

		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete project comments: %w", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete project tasks: %w", err)
		}
		return nil
	})
}

// forUser scopes a project query to the projects userID created or holds a
// task in
func forUser(db *gorm.DB, userID uint) *gorm.DB {
	assigned := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Task{}).Select("project_id").Where("assignee_id = ?", userID)
	return db.Where("(creator_id = ? OR id IN (?))", userID, assigned)
}

// ListForUser lists the projects created by userID together with the
// projects holding a task assigned to userID, each once, ordered by ID
func (r *ProjectRepository) ListForUser(ctx context.Context, userID uint, opts *models.ListOptions) ([]models.Project, error) {
	opts = opts.Normalize()

	var projects []models.Project
	err := forUser(r.db.WithContext(ctx), userID).
		Order("id ASC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&projects).Error
	return projects, err
}

// CountForUser counts the projects ListForUser pages through
func (r *ProjectRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := forUser(r.db.WithContext(ctx).Model(&models.Project{}), userID).Count(&count).Error
	return count, err
}
