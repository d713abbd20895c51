package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "kanban-board.com/kanban-board/internal/data_models"
	"kanban-board.com/kanban-board/internal/services"
)

func (h *Handler) ListBoards(c echo.Context) error {
	boards, err := h.boards.List(c.Request().Context(), callerID(c))
	if err != nil {
		return err
	}

	out := make([]dto.BoardSummaryResponse, 0, len(boards))
	for _, b := range boards {
		out = append(out, dto.NewBoardSummaryResponse(b.Board, b.Stats))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateBoard(c echo.Context) error {
	var req dto.CreateBoardRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	board, err := h.boards.Create(c.Request().Context(), callerID(c), req.Title, req.Members)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewBoardSummaryResponse(board.Board, board.Stats))
}

func (h *Handler) GetBoard(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	board, err := h.boards.Get(c.Request().Context(), id, callerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewBoardDetailResponse(board.Board, board.Stats, board.Tasks))
}

func (h *Handler) UpdateBoard(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateBoardRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	board, err := h.boards.Update(c.Request().Context(), id, callerID(c), services.BoardPatch{
		Title:   req.Title,
		Members: req.Members,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewBoardSummaryResponse(board.Board, board.Stats))
}

func (h *Handler) DeleteBoard(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.boards.Delete(c.Request().Context(), id, callerID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
