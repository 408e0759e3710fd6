package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/service"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

type GenresHTTP struct {
	Svc *service.GenreService
}

func (h *GenresHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres_create")

	var req transport.NameRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "genre_create_failed", err)
	}
	genre, err := h.Svc.Create(ctx, req)
	if err != nil {
		return httpError(l, "genre_create_failed", err)
	}
	return c.JSON(http.StatusCreated, genre)
}

func (h *GenresHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres_list")

	genres, err := h.Svc.List(ctx)
	if err != nil {
		return httpError(l, "genre_list_failed", err)
	}
	return c.JSON(http.StatusOK, transport.DataResponse{Data: genres})
}

func (h *GenresHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres_get")

	genre, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(l, "genre_get_failed", err)
	}
	return c.JSON(http.StatusOK, genre)
}

func (h *GenresHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres_update")

	var req transport.NameRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "genre_update_failed", err)
	}
	genre, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return httpError(l, "genre_update_failed", err)
	}
	return c.JSON(http.StatusOK, genre)
}

func (h *GenresHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "genres_delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return httpError(l, "genre_delete_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type ComicTypesHTTP struct {
	Svc *service.ComicTypeService
}

func (h *ComicTypesHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comic_types_create")

	var req transport.NameRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "comic_type_create_failed", err)
	}
	ct, err := h.Svc.Create(ctx, req)
	if err != nil {
		return httpError(l, "comic_type_create_failed", err)
	}
	return c.JSON(http.StatusCreated, ct)
}

func (h *ComicTypesHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comic_types_list")

	types, err := h.Svc.List(ctx)
	if err != nil {
		return httpError(l, "comic_type_list_failed", err)
	}
	return c.JSON(http.StatusOK, transport.DataResponse{Data: types})
}

func (h *ComicTypesHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comic_types_get")

	ct, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(l, "comic_type_get_failed", err)
	}
	return c.JSON(http.StatusOK, ct)
}

func (h *ComicTypesHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comic_types_update")

	var req transport.NameRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "comic_type_update_failed", err)
	}
	ct, err := h.Svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		return httpError(l, "comic_type_update_failed", err)
	}
	return c.JSON(http.StatusOK, ct)
}

func (h *ComicTypesHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comic_types_delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return httpError(l, "comic_type_delete_failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
