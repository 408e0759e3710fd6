package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/service"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

type ChaptersHTTP struct {
	Svc *service.ChapterService
}

func (h *ChaptersHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "chapters_create")

	var req transport.ChapterRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "chapter_create_failed", err)
	}
	chapter, err := h.Svc.Create(ctx, c.Param("comicSlug"), req)
	if err != nil {
		return httpError(l, "chapter_create_failed", err)
	}
	return c.JSON(http.StatusCreated, chapter)
}

func (h *ChaptersHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "chapters_list")

	chapters, err := h.Svc.List(ctx, c.Param("comicSlug"))
	if err != nil {
		return httpError(l, "chapter_list_failed", err)
	}
	return c.JSON(http.StatusOK, transport.DataResponse{Data: chapters})
}

func (h *ChaptersHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "chapters_get")

	chapter, err := h.Svc.Get(ctx, c.Param("comicSlug"), c.Param("chapterSlug"))
	if err != nil {
		return httpError(l, "chapter_get_failed", err)
	}
	return c.JSON(http.StatusOK, chapter)
}

func (h *ChaptersHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "chapters_update")

	var req transport.ChapterRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "chapter_update_failed", err)
	}
	chapter, err := h.Svc.Update(ctx, c.Param("comicSlug"), c.Param("id"), req)
	if err != nil {
		return httpError(l, "chapter_update_failed", err)
	}
	return c.JSON(http.StatusOK, chapter)
}

func (h *ChaptersHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "chapters_delete")

	n, err := h.Svc.Delete(ctx, c.Param("comicSlug"), c.Param("slugOrSlugs"))
	if err != nil {
		return httpError(l, "chapter_delete_failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
