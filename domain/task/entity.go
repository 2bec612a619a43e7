// Package task holds the task domain entity shared across modules.
package task

import (
	"time"
)

// Task lifecycle states. A task moves Pending -> In-progress on assignment
// and In-progress -> Completed on agent action; there is no transition back.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In-progress"
	StatusCompleted  = "Completed"
)

// Task is one imported contact record requiring agent follow-up.
//
// TaskID has the form BBBB-NNN: a zero-padded 4-digit batch number shared by
// every row imported from one file, and a zero-padded 3-digit 1-based row
// sequence within that batch. It is immutable once created.
//
// The JSON names mirror the wire format the frontend already consumes.
type Task struct {
	TaskID        string     `gorm:"column:task_id;primaryKey;type:text" json:"Task_id"`
	FirstName     string     `gorm:"not null;type:text" json:"firstName"`
	Phone         string     `gorm:"index;not null;type:text" json:"phone"`
	Notes         string     `gorm:"type:text" json:"notes"`
	Status        string     `gorm:"index;not null;default:Pending;type:text" json:"status"`
	AssignedAgent *string    `gorm:"index;type:text" json:"assignedAgent"`
	AssignedAt    *time.Time `json:"assignedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "csv_data"
}
