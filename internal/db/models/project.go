package models

import "time"

// ProjectDateLayout is the display format of Project.Date
const ProjectDateLayout = "January 02, 2006"

// DayLayout is the month and day shown on the home page
const DayLayout = "January 02"

// MaxProjectTitleLength is the longest accepted project title
const MaxProjectTitleLength = 250

// Project groups tasks under a creator
type Project struct {
	Model
	Title       string `json:"title" gorm:"size:250;not null"`
	Description string `json:"description" gorm:"type:text"`
	Date        string `json:"date" gorm:"size:250;not null"`
	CreatorID   uint   `json:"creator_id" gorm:"not null;index"`
}

// FormatProjectDate renders t the way Project.Date stores it
func FormatProjectDate(t time.Time) string {
	return t.Format(ProjectDateLayout)
}
