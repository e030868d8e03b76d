package services

import (
	"context"

	"github.com/celestiaorg/taskboard/internal/db/models"
	"github.com/celestiaorg/taskboard/internal/db/repos"
)

// Comment handles comments on tasks
type Comment struct {
	comments *repos.CommentRepository
	tasks    *repos.TaskRepository
}

// NewCommentService creates a new comment service instance
func NewCommentService(comments *repos.CommentRepository, tasks *repos.TaskRepository) *Comment {
	return &Comment{comments: comments, tasks: tasks}
}

func validateComment(text string) (string, error) {
	v := &ValidationError{}
	text = requireText(v, "text", text, models.MaxCommentTextLength)
	return text, v.Err()
}

// Create adds a comment by author to a task
func (s *Comment) Create(ctx context.Context, author *models.User, taskID uint, text string) (*models.Comment, error) {
	text, err := validateComment(text)
	if err != nil {
		return nil, err
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, notFound(err)
	}
	comment := &models.Comment{Text: text, AuthorID: author.ID, TaskID: taskID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Get retrieves a comment of a task. A comment belonging to another task is
// reported as not found.
func (s *Comment) Get(ctx context.Context, taskID, commentID uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFound(err)
	}
	if comment.TaskID != taskID {
		return nil, ErrNotFound
	}
	return comment, nil
}

// GetOwn retrieves a comment of a task that user authored
func (s *Comment) GetOwn(ctx context.Context, user *models.User, taskID, commentID uint) (*models.Comment, error) {
	comment, err := s.Get(ctx, taskID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != user.ID {
		return nil, ErrForbidden
	}
	return comment, nil
}

// Update replaces the text of a comment. Only its author may edit it.
func (s *Comment) Update(ctx context.Context, user *models.User, taskID, commentID uint, text string) (*models.Comment, error) {
	text, err := validateComment(text)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.Update(ctx, commentID, func(c *models.Comment) error {
		if c.TaskID != taskID {
			return ErrNotFound
		}
		if c.AuthorID != user.ID {
			return ErrForbidden
		}
		c.Text = text
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

// Delete removes a comment. Only its author may delete it.
func (s *Comment) Delete(ctx context.Context, user *models.User, taskID, commentID uint) error {
	if _, err := s.GetOwn(ctx, user, taskID, commentID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return notFound(err)
	}
	return nil
}
