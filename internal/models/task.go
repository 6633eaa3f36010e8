package models

import "time"

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "New"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// ValidTaskStatus reports whether s is one of the allowed status values.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Title         string     `gorm:"type:varchar(100);not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	AuthorID      *uint64    `gorm:"index" json:"author"`
	AssigneeID    *uint64    `gorm:"index" json:"assignee"`
	Deadline      time.Time  `gorm:"not null" json:"deadline"`
	Status        TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	EstimatedTime uint       `gorm:"not null" json:"estimated_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Author    *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author_details,omitempty"`
	Assignee  *User  `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL" json:"assignee_details,omitempty"`
	Observers []User `gorm:"many2many:task_observers" json:"observers,omitempty"`
	Executors []User `gorm:"many2many:task_executors" json:"executors,omitempty"`
}
