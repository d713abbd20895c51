package http

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "kanban-board.com/kanban-board/internal/errors"
	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	"kanban-board.com/kanban-board/internal/services"
)

var errResourceNotFound = apperrors.NotFound("not found")

type Handler struct {
	auth     *services.AuthService
	boards   *services.BoardService
	tasks    *services.TaskService
	comments *services.CommentService
}

func NewHandler(
	auth *services.AuthService,
	boards *services.BoardService,
	tasks *services.TaskService,
	comments *services.CommentService,
) *Handler {
	return &Handler{
		auth:     auth,
		boards:   boards,
		tasks:    tasks,
		comments: comments,
	}
}

// bind decodes the JSON body into req and runs the registered validator.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Internal != nil {
			return apperrors.Validation(apperrors.ErrInvalidJSON.Message + ": " + httpErr.Internal.Error())
		}
		return apperrors.ErrInvalidJSON
	}
	return c.Validate(req)
}

// pathID parses a numeric path parameter. Anything else cannot name a resource.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errResourceNotFound
	}
	return uint(id), nil
}

func callerID(c echo.Context) uint {
	if caller := middleware.Caller(c); caller != nil {
		return caller.ID
	}
	return 0
}
