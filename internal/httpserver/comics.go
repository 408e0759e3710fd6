package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/comic_catalog/internal/logging"
	authmw "github.com/Skotchmaster/comic_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/comic_catalog/internal/service"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
	"github.com/Skotchmaster/comic_catalog/internal/util"
)

type ComicsHTTP struct {
	Svc *service.ComicService
}

// readImage returns the optional "image" multipart file. The caller closes it.
func readImage(c echo.Context) (*service.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &service.ImageUpload{File: f, Filename: fh.Filename}, func() { _ = f.Close() }, nil
}

func (h *ComicsHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comics_create")

	var req transport.ComicRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "comic_create_failed", err)
	}
	image, closeImage, err := readImage(c)
	if err != nil {
		return badBody(l, "comic_create_failed", err)
	}
	defer closeImage()

	id, _ := authmw.IdentityFrom(c)
	comic, err := h.Svc.Create(ctx, id.UserID, req, image)
	if err != nil {
		return httpError(l, "comic_create_failed", err)
	}
	return c.JSON(http.StatusCreated, comic)
}

func (h *ComicsHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comics_list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.List(ctx, page, size)
	if err != nil {
		return httpError(l, "comic_list_failed", err)
	}
	return c.JSON(http.StatusOK, transport.PageResponse{Data: res.Items, Paging: res.Paging})
}

func (h *ComicsHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comics_search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return httpError(l, "comic_search_failed", err)
	}
	return c.JSON(http.StatusOK, transport.PageResponse{Data: res.Items, Paging: res.Paging})
}

func (h *ComicsHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comics_get")

	comic, err := h.Svc.Get(ctx, c.Param("slug"))
	if err != nil {
		return httpError(l, "comic_get_failed", err)
	}
	return c.JSON(http.StatusOK, comic)
}

func (h *ComicsHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comics_update")

	var req transport.ComicRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "comic_update_failed", err)
	}
	image, closeImage, err := readImage(c)
	if err != nil {
		return badBody(l, "comic_update_failed", err)
	}
	defer closeImage()

	comic, err := h.Svc.Update(ctx, c.Param("id"), req, image)
	if err != nil {
		return httpError(l, "comic_update_failed", err)
	}
	return c.JSON(http.StatusOK, comic)
}

func (h *ComicsHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comics_delete")

	comic, err := h.Svc.Delete(ctx, c.Param("slug"))
	if err != nil {
		return httpError(l, "comic_delete_failed", err)
	}
	return c.JSON(http.StatusOK, transport.DataResponse{Data: comic})
}
