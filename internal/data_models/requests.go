package dto

import "time"

type RegistrationRequest struct {
	Email            string `json:"email" validate:"required,email,max=254"`
	FullName         string `json:"fullname" validate:"required,max=150"`
	Password         string `json:"password" validate:"required"`
	RepeatedPassword string `json:"repeated_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateBoardRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Members []uint `json:"members" validate:"omitempty,dive,gt=0"`
}

// UpdateBoardRequest is a partial update: nil fields are left unchanged.
type UpdateBoardRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Members *[]uint `json:"members" validate:"omitempty,dive,gt=0"`
}

type CreateTaskRequest struct {
	Board       uint   `json:"board" validate:"required"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=to-do in-progress review done"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssigneeID  *uint  `json:"assignee_id"`
	ReviewerID  *uint  `json:"reviewer_id"`
	DueDate     *Date  `json:"due_date"`
}

func (r CreateTaskRequest) DueTime() *time.Time {
	if r.DueDate == nil {
		return nil
	}
	t := r.DueDate.Time
	return &t
}

// UpdateTaskRequest is a partial update. For assignee_id, reviewer_id and
// due_date an explicit null (or id 0) clears the value.
type UpdateTaskRequest struct {
	Title       *string      `json:"title" validate:"omitempty,max=255"`
	Description *string      `json:"description"`
	Status      *string      `json:"status" validate:"omitempty,oneof=to-do in-progress review done"`
	Priority    *string      `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssigneeID  OptionalID   `json:"assignee_id"`
	ReviewerID  OptionalID   `json:"reviewer_id"`
	DueDate     OptionalDate `json:"due_date"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}
