package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "kanban-board.com/kanban-board/internal/errors"
	model "kanban-board.com/kanban-board/internal/models"
)

const (
	callerKey      = "caller"
	callerTokenKey = "caller_token"
	tokenScheme    = "Token"
)

// CallerResolver maps an opaque token to its user.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*model.User, error)
}

// TokenAuth requires an "Authorization: Token <key>" header and stores the
// resolved user on the context.
func TokenAuth(resolver CallerResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			user, err := resolver.ResolveCaller(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(callerKey, user)
			c.Set(callerTokenKey, token)
			return next(c)
		}
	}
}

func tokenFromHeader(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.ErrMissingToken
	}

	parts := strings.Fields(raw)
	if len(parts) != 2 || !strings.EqualFold(parts[0], tokenScheme) {
		return "", apperrors.ErrInvalidToken
	}
	return parts[1], nil
}

// Caller returns the authenticated user, or nil outside TokenAuth.
func Caller(c echo.Context) *model.User {
	user, _ := c.Get(callerKey).(*model.User)
	return user
}

// CallerToken returns the token the caller authenticated with.
func CallerToken(c echo.Context) string {
	token, _ := c.Get(callerTokenKey).(string)
	return token
}
