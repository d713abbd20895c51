package model

import (
	"time"

	"kanban-board.com/kanban-board/internal/constants"
)

type Task struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	BoardID     uint                   `gorm:"not null;index" json:"board"`
	Title       string                 `gorm:"size:255;not null" json:"title"`
	Description string                 `gorm:"not null;default:''" json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	AssigneeID  *uint                  `gorm:"index" json:"assignee_id"`
	ReviewerID  *uint                  `gorm:"index" json:"reviewer_id"`
	DueDate     *time.Time             `gorm:"type:date" json:"due_date"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`

	Board    Board `gorm:"foreignKey:BoardID" json:"-"`
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"-"`
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"-"`

	CommentsCount int64 `gorm:"-:all" json:"comments_count"`
}
