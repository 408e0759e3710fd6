package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/comic_catalog/internal/db"
	"github.com/Skotchmaster/comic_catalog/internal/logging"
	authmw "github.com/Skotchmaster/comic_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/comic_catalog/internal/models"
)

type Deps struct {
	DB         *gorm.DB
	Gate       *authmw.Gate
	Auth       *AuthHTTP
	Users      *UsersHTTP
	Genres     *GenresHTTP
	ComicTypes *ComicTypesHTTP
	Comics     *ComicsHTTP
	Chapters   *ChaptersHTTP
}

// Route is one entry of the route table. The gate enforces Policy before Handler runs.
type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
	Policy  authmw.Policy
}

var (
	staff = authmw.Roles(models.RoleSuper, models.RoleAdmin)
	super = authmw.Roles(models.RoleSuper)
)

func Routes(d *Deps) []Route {
	return []Route{
		{http.MethodPost, "/api/auth/signIn", d.Auth.SignIn, authmw.Public()},
		{http.MethodPost, "/api/auth/refresh-token", d.Auth.RefreshToken, authmw.Public()},
		{http.MethodGet, "/api/auth/token", d.Auth.RefreshToken, authmw.Public()},
		{http.MethodPost, "/api/auth/signOut", d.Auth.SignOut, authmw.Public()},
		{http.MethodGet, "/api/auth/profile", d.Auth.Profile, authmw.Authenticated()},
		{http.MethodPatch, "/api/auth/profile/change-password", d.Auth.ChangePassword, staff},

		{http.MethodPost, "/api/users", d.Users.Create, super},
		{http.MethodGet, "/api/users", d.Users.List, super},
		{http.MethodGet, "/api/users/:username", d.Users.Get, super},
		{http.MethodPatch, "/api/users/:username", d.Users.UpdateRole, super},
		{http.MethodDelete, "/api/users/:username", d.Users.Delete, super},

		{http.MethodPost, "/api/genres", d.Genres.Create, staff},
		{http.MethodGet, "/api/genres", d.Genres.List, staff},
		{http.MethodGet, "/api/genres/:id", d.Genres.Get, staff},
		{http.MethodPatch, "/api/genres/:id", d.Genres.Update, staff},
		{http.MethodDelete, "/api/genres/:id", d.Genres.Delete, staff},

		{http.MethodPost, "/api/comic-types", d.ComicTypes.Create, staff},
		{http.MethodGet, "/api/comic-types", d.ComicTypes.List, staff},
		{http.MethodGet, "/api/comic-types/:id", d.ComicTypes.Get, staff},
		{http.MethodPatch, "/api/comic-types/:id", d.ComicTypes.Update, staff},
		{http.MethodDelete, "/api/comic-types/:id", d.ComicTypes.Delete, staff},

		{http.MethodPost, "/api/comics", d.Comics.Create, staff},
		{http.MethodGet, "/api/comics", d.Comics.List, authmw.Public()},
		{http.MethodGet, "/api/comics/search", d.Comics.Search, authmw.Public()},
		{http.MethodGet, "/api/comics/:slug", d.Comics.Get, authmw.Public()},
		{http.MethodPatch, "/api/comics/:id", d.Comics.Update, staff},
		{http.MethodDelete, "/api/comics/:slug", d.Comics.Delete, staff},

		{http.MethodPost, "/api/comics/:comicSlug/chapters", d.Chapters.Create, staff},
		{http.MethodGet, "/api/comics/:comicSlug/chapters", d.Chapters.List, authmw.Public()},
		{http.MethodGet, "/api/comics/:comicSlug/chapters/:chapterSlug", d.Chapters.Get, authmw.Public()},
		{http.MethodPatch, "/api/comics/:comicSlug/chapters/:id", d.Chapters.Update, staff},
		{http.MethodDelete, "/api/comics/:comicSlug/chapters/:slugOrSlugs", d.Chapters.Delete, staff},
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx, d.DB); err != nil {
			logging.FromContext(ctx).Error("readiness_failed", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	for _, r := range Routes(d) {
		e.Add(r.Method, r.Path, r.Handler, d.Gate.For(r.Policy))
	}
}
