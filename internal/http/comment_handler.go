package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "kanban-board.com/kanban-board/internal/data_models"
)

func (h *Handler) ListComments(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.comments.List(c.Request().Context(), taskID, callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

func (h *Handler) CreateComment(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.Create(c.Request().Context(), taskID, callerID(c), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.NewCommentResponse(*comment))
}

func (h *Handler) DeleteComment(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "cid")
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), taskID, commentID, callerID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
