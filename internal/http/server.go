package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	"kanban-board.com/kanban-board/internal/http/validators"
	"kanban-board.com/kanban-board/internal/services"
)

type ServerDeps struct {
	Auth      *services.AuthService
	Boards    *services.BoardService
	Tasks     *services.TaskService
	Comments  *services.CommentService
	RateLimit middleware.RateLimitStore
	Logger    logrus.FieldLogger
}

// NewServer builds the echo instance with middlewares, validator, error
// handler and all routes. A nil RateLimit store disables rate limiting.
func NewServer(deps ServerDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.New()
	e.HTTPErrorHandler = ErrorHandler(deps.Logger)

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomw.Recover())
	if deps.RateLimit != nil {
		e.Use(middleware.RateLimiter(deps.RateLimit, deps.Logger))
	}

	h := NewHandler(deps.Auth, deps.Boards, deps.Tasks, deps.Comments)
	Register(e, h, deps.Auth)
	return e
}
