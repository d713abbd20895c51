package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-board.com/kanban-board/internal/constants"
	dto "kanban-board.com/kanban-board/internal/data_models"
	"kanban-board.com/kanban-board/internal/services"
)

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.tasks.List(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponses(tasks))
}

func (h *Handler) ListAssignedToMe(c echo.Context) error {
	tasks, err := h.tasks.ListAssignedTo(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponses(tasks))
}

func (h *Handler) ListReviewing(c echo.Context) error {
	tasks, err := h.tasks.ListReviewing(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponses(tasks))
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), callerID(c), services.TaskInput{
		BoardID:     req.Board,
		Title:       req.Title,
		Description: req.Description,
		Status:      constants.TaskStatus(req.Status),
		Priority:    constants.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		ReviewerID:  req.ReviewerID,
		DueDate:     req.DueTime(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewTaskResponse(*task))
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.Request().Context(), id, callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponse(*task))
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Update(c.Request().Context(), id, callerID(c), taskPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponse(*task))
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), id, callerID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func taskPatch(req dto.UpdateTaskRequest) services.TaskPatch {
	patch := services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    services.UserRef{Set: req.AssigneeID.Set, ID: req.AssigneeID.ID},
		Reviewer:    services.UserRef{Set: req.ReviewerID.Set, ID: req.ReviewerID.ID},
		DueDate:     services.DateRef{Set: req.DueDate.Set, Date: req.DueDate.TimePtr()},
	}
	if req.Status != nil {
		status := constants.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := constants.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	return patch
}
