package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/service"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

type UsersHTTP struct {
	Svc *service.UserService
}

func (h *UsersHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "user_create_failed", err)
	}

	user, err := h.Svc.Create(ctx, req)
	if err != nil {
		return httpError(l, "user_create_failed", err)
	}

	l.Info("user_created", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.NewUserResponse(user))
}

func (h *UsersHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		return httpError(l, "user_list_failed", err)
	}

	out := make([]transport.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, transport.NewUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, transport.DataResponse{Data: out})
}

func (h *UsersHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_get")

	user, err := h.Svc.Get(ctx, c.Param("username"))
	if err != nil {
		return httpError(l, "user_get_failed", err)
	}
	return c.JSON(http.StatusOK, transport.NewUserResponse(user))
}

func (h *UsersHTTP) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_update")

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "user_update_failed", err)
	}

	user, err := h.Svc.UpdateRole(ctx, c.Param("username"), req)
	if err != nil {
		return httpError(l, "user_update_failed", err)
	}
	return c.JSON(http.StatusOK, transport.NewUserResponse(user))
}

func (h *UsersHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_delete")

	username := c.Param("username")
	if err := h.Svc.Delete(ctx, username); err != nil {
		return httpError(l, "user_delete_failed", err)
	}

	l.Info("user_deleted", "username", username)
	return c.NoContent(http.StatusNoContent)
}
