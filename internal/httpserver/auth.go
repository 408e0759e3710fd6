package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/comic_catalog/internal/logging"
	authmw "github.com/Skotchmaster/comic_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/comic_catalog/internal/service"
	"github.com/Skotchmaster/comic_catalog/internal/transport"
)

type AuthHTTP struct {
	Svc     *service.AuthService
	Cookies CookieConfig
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signin")

	var req transport.SignInRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "signin_failed", err)
	}

	res, err := h.Svc.SignIn(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			l.Warn("signin_failed", "status", 401, "reason", "bad credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid identifier or password")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("signin_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return httpError(l, "signin_failed", err)
	}

	c.SetCookie(h.Cookies.CreateCookie(authmw.AccessCookie, res.Access.Value, res.Access.ExpiresAt))
	c.SetCookie(h.Cookies.CreateCookie(authmw.RefreshCookie, res.Refresh.Value, res.Refresh.ExpiresAt))
	l.Info("signin_successful", "user_id", res.User.ID)

	return c.JSON(http.StatusOK, transport.DataResponse{Data: transport.NewProfileResponse(res.User)})
}

// RefreshToken reads the refresh token from its cookie or the request body.
func (h *AuthHTTP) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	token := ""
	if ck, err := c.Cookie(authmw.RefreshCookie); err == nil {
		token = ck.Value
	}
	if token == "" {
		var req transport.RefreshTokenRequest
		if err := c.Bind(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		l.Warn("refresh_failed", "status", 400, "reason", "missing refresh token")
		return echo.NewHTTPError(http.StatusBadRequest, "refresh token is required")
	}

	res, err := h.Svc.Refresh(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("refresh_failed", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token invalid or expired, sign in again")
		}
		return httpError(l, "refresh_failed", err)
	}

	c.SetCookie(h.Cookies.CreateCookie(authmw.AccessCookie, res.Access.Value, res.Access.ExpiresAt))
	if res.Refresh != nil {
		c.SetCookie(h.Cookies.CreateCookie(authmw.RefreshCookie, res.Refresh.Value, res.Refresh.ExpiresAt))
	}
	l.Info("refresh_successful")

	return c.JSON(http.StatusCreated, echo.Map{"message": "access token refreshed"})
}

func (h *AuthHTTP) SignOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signout")

	ck, err := c.Cookie(authmw.RefreshCookie)
	if err != nil || ck.Value == "" {
		l.Warn("signout_failed", "status", 401, "reason", "no session cookie")
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	c.SetCookie(h.Cookies.DeleteCookie(authmw.RefreshCookie))
	c.SetCookie(h.Cookies.DeleteCookie(authmw.AccessCookie))

	if err := h.Svc.SignOut(ctx, ck.Value); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("signout_failed", "status", 404, "reason", "unknown session")
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return httpError(l, "signout_failed", err)
	}

	l.Info("signout_successful")
	return c.JSON(http.StatusOK, echo.Map{"message": "signed out"})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_profile")

	id, _ := authmw.IdentityFrom(c)
	user, err := h.Svc.Profile(ctx, id.Token)
	if err != nil {
		return httpError(l, "profile_failed", err)
	}
	return c.JSON(http.StatusOK, transport.DataResponse{Data: transport.NewProfileResponse(user)})
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_change_password")

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "change_password_failed", err)
	}

	id, _ := authmw.IdentityFrom(c)
	if err := h.Svc.ChangePassword(ctx, id.Token, req); err != nil {
		return httpError(l, "change_password_failed", err)
	}

	l.Info("password_changed", "user_id", id.UserID)
	return c.JSON(http.StatusCreated, echo.Map{"message": "password changed"})
}
