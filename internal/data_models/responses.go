package dto

import (
	"time"

	model "kanban-board.com/kanban-board/internal/models"
)

type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	UserID   uint   `json:"user_id"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

type BoardSummaryResponse struct {
	ID                 uint   `json:"id"`
	Title              string `json:"title"`
	MemberCount        int64  `json:"member_count"`
	TicketCount        int64  `json:"ticket_count"`
	TasksToDoCount     int64  `json:"tasks_to_do_count"`
	TasksHighPrioCount int64  `json:"tasks_high_prio_count"`
	OwnerID            uint   `json:"owner_id"`
}

type BoardDetailResponse struct {
	BoardSummaryResponse
	Members []UserResponse `json:"members"`
	Tasks   []TaskResponse `json:"tasks"`
}

type TaskResponse struct {
	ID            uint          `json:"id"`
	Board         uint          `json:"board"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        string        `json:"status"`
	Priority      string        `json:"priority"`
	Assignee      *UserResponse `json:"assignee"`
	Reviewer      *UserResponse `json:"reviewer"`
	DueDate       *Date         `json:"due_date"`
	CommentsCount int64         `json:"comments_count"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
}

func NewAuthResponse(token string, user model.User) AuthResponse {
	return AuthResponse{
		Token:    token,
		FullName: user.FullName,
		Email:    user.Email,
		UserID:   user.ID,
	}
}

func NewUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

func NewBoardSummaryResponse(board model.Board, stats model.BoardStats) BoardSummaryResponse {
	return BoardSummaryResponse{
		ID:                 board.ID,
		Title:              board.Title,
		MemberCount:        stats.MemberCount,
		TicketCount:        stats.TicketCount,
		TasksToDoCount:     stats.ToDoCount,
		TasksHighPrioCount: stats.HighPriorityCount,
		OwnerID:            board.OwnerID,
	}
}

func NewBoardDetailResponse(board model.Board, stats model.BoardStats, tasks []model.Task) BoardDetailResponse {
	members := make([]UserResponse, 0, len(board.Members))
	for _, m := range board.Members {
		members = append(members, NewUserResponse(m))
	}

	return BoardDetailResponse{
		BoardSummaryResponse: NewBoardSummaryResponse(board, stats),
		Members:              members,
		Tasks:                NewTaskResponses(tasks),
	}
}

func NewTaskResponse(task model.Task) TaskResponse {
	resp := TaskResponse{
		ID:            task.ID,
		Board:         task.BoardID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        string(task.Status),
		Priority:      string(task.Priority),
		CommentsCount: task.CommentsCount,
	}
	if task.Assignee != nil {
		u := NewUserResponse(*task.Assignee)
		resp.Assignee = &u
	}
	if task.Reviewer != nil {
		u := NewUserResponse(*task.Reviewer)
		resp.Reviewer = &u
	}
	if task.DueDate != nil {
		d := NewDate(*task.DueDate)
		resp.DueDate = &d
	}
	return resp
}

func NewTaskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}

func NewCommentResponse(comment model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt,
		Author:    comment.Author.FullName,
		Content:   comment.Content,
	}
}

func NewCommentResponses(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}
