package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "kanban-board.com/kanban-board/internal/data_models"
	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
)

func (h *Handler) Register(c echo.Context) error {
	var req dto.RegistrationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Register(c.Request().Context(), req.Email, req.FullName, req.Password, req.RepeatedPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewAuthResponse(res.Token, res.User))
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewAuthResponse(res.Token, res.User))
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.CallerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) EmailCheck(c echo.Context) error {
	user, err := h.auth.LookupEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
