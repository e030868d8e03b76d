package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/celestiaorg/taskboard/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create creates a new task in the database
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by ID from the database
// Returns ErrRecordNotFound if the task doesn't exist
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// Update loads the task, applies mutate and saves it in one transaction.
// Nothing is written when mutate returns an error.
func (r *TaskRepository) Update(ctx context.Context, id uint, mutate func(*models.Task) error) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			return err
		}
		if err := mutate(&task); err != nil {
			return err
		}
		return tx.Save(&task).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Toggle flips the completion flag of a task in a single statement and
// returns the updated task
func (r *TaskRepository) Toggle(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Task{}).
			Where("id = ?", id).
			Update(models.TaskIsCompleteField, gorm.Expr("NOT "+models.TaskIsCompleteField))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&task, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return &task, nil
}

// DeleteCascade deletes the task and its comments in one transaction and
// returns the deleted task
func (r *TaskRepository) DeleteCascade(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete task comments: %w", err)
		}
		return tx.Delete(&task).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject retrieves all tasks of a project ordered by ID
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	opts = opts.Normalize()
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&tasks).Error
	return tasks, err
}

// ListAssigned retrieves the incomplete tasks assigned to userID in the given order
func (r *TaskRepository) ListAssigned(ctx context.Context, userID uint, order models.TaskOrder, opts *models.ListOptions) ([]models.Task, error) {
	opts = opts.Normalize()
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("assignee_id = ?", userID).
		Where(models.TaskIsCompleteField+" = ?", false).
		Order(order.Column()).
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&tasks).Error
	return tasks, err
}

// CountAssigned counts the incomplete tasks assigned to userID
func (r *TaskRepository) CountAssigned(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("assignee_id = ?", userID).
		Where(models.TaskIsCompleteField+" = ?", false).
		Count(&count).Error
	return count, err
}

// HasAssignee reports whether userID is assigned to any task in the project
func (r *TaskRepository) HasAssignee(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id = ? AND assignee_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}
