package model

import (
	"time"

	"gorm.io/datatypes"
)

// Task is a unit of work with a single current due date. Previous due dates
// live only in TaskHistory.
type Task struct {
	ID               uint           `gorm:"primaryKey"`
	UserID           uint           `gorm:"index;not null"`
	Title            string         `gorm:"size:100;not null"`
	Description      string         `gorm:"type:text"`
	DueDate          datatypes.Date `gorm:"index;not null"`
	Completed        bool           `gorm:"default:false"`
	AIGuidance       string         `gorm:"type:text"`
	IncompleteReason string         `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	History          []TaskHistory `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TaskHistory records one due-date episode of a task. Rows are appended when
// the due date changes and are never touched once a newer episode exists.
type TaskHistory struct {
	ID               uint           `gorm:"primaryKey"`
	TaskID           uint           `gorm:"index;not null"`
	DueDate          datatypes.Date `gorm:"not null"`
	Completed        bool           `gorm:"default:false"`
	CompletionDate   *time.Time
	IncompleteReason string `gorm:"type:text"`
	CreatedAt        time.Time
}

// TableName keeps the history table name stable across gorm naming strategies.
func (TaskHistory) TableName() string {
	return "task_histories"
}
