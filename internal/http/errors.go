package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "kanban-board.com/kanban-board/internal/data_models"
	apperrors "kanban-board.com/kanban-board/internal/errors"
)

// ErrorHandler renders every error as {"detail": ...}. Anything that is not an
// Exception or an echo.HTTPError is a 500 and its cause stays in the log.
func ErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := dto.ErrorResponse{Detail: "internal server error"}

		var exc *apperrors.Exception
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &exc):
			status = exc.StatusCode
			body = dto.ErrorResponse{Detail: exc.Message, Errors: exc.Fields}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			body.Detail = fmt.Sprint(httpErr.Message)
		}

		if status >= http.StatusInternalServerError {
			logger.WithError(err).
				WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.WithError(err).Warn("failed to write error response")
		}
	}
}
