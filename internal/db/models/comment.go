package models

// MaxCommentTextLength is the longest accepted comment
const MaxCommentTextLength = 100

// Comment is a note left by a user on a task
type Comment struct {
	Model
	Text     string `json:"text" gorm:"size:100;not null"`
	AuthorID uint   `json:"author_id" gorm:"not null;index"`
	TaskID   uint   `json:"task_id" gorm:"not null;index"`
}
