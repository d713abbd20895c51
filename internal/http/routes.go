package http

import (
	"github.com/labstack/echo/v4"

	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, resolver middleware.CallerResolver) {
	e.GET("/health", h.Health)
	e.POST("/registration", h.Register)
	e.POST("/login", h.Login)

	// Attached per route: a prefix-less group would also guard unknown paths.
	auth := middleware.TokenAuth(resolver)

	e.POST("/logout", h.Logout, auth)
	e.GET("/email-check", h.EmailCheck, auth)

	e.GET("/boards", h.ListBoards, auth)
	e.POST("/boards", h.CreateBoard, auth)
	e.GET("/boards/:id", h.GetBoard, auth)
	e.PATCH("/boards/:id", h.UpdateBoard, auth)
	e.DELETE("/boards/:id", h.DeleteBoard, auth)

	e.GET("/tasks/assigned-to-me", h.ListAssignedToMe, auth)
	e.GET("/tasks/reviewing", h.ListReviewing, auth)
	e.GET("/tasks", h.ListTasks, auth)
	e.POST("/tasks", h.CreateTask, auth)
	e.GET("/tasks/:id", h.GetTask, auth)
	e.PATCH("/tasks/:id", h.UpdateTask, auth)
	e.DELETE("/tasks/:id", h.DeleteTask, auth)

	e.GET("/tasks/:id/comments", h.ListComments, auth)
	e.POST("/tasks/:id/comments", h.CreateComment, auth)
	e.DELETE("/tasks/:id/comments/:cid", h.DeleteComment, auth)
}
