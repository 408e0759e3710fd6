// Package auth is the per-route authorization gate.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/tokens"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	identityKey = "identity"
)

type Verifier interface {
	Verify(token string, kind tokens.Kind) (tokens.Claims, error)
}

type RoleSource interface {
	GetUserRole(ctx context.Context, userID string) (models.Role, error)
}

// Identity is the authenticated caller of the current request.
type Identity struct {
	UserID string
	Role   models.Role
	Token  string
}

type Gate struct {
	Tokens Verifier
	Roles  RoleSource
}

// For builds the middleware enforcing p. Public routes skip token checks.
// Role checks use the role currently stored for the user, not the one in the token.
func (g *Gate) For(p Policy) echo.MiddlewareFunc {
	if p.Access == AccessPublic {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityKey,
		TokenLookup: "cookie:" + AccessCookie + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, raw string) (any, error) {
			claims, err := g.Tokens.Verify(raw, tokens.Access)
			if err != nil {
				return nil, err
			}
			return Identity{UserID: claims.UserID, Role: models.Role(claims.Role), Token: raw}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "auth_gate", "policy", p.String())
			if AccessToken(c) == "" {
				l.Warn("auth_denied", "status", http.StatusUnauthorized, "reason", "missing access token")
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			l.Warn("auth_denied", "status", http.StatusUnauthorized, "reason", "invalid access token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if p.Access == AccessRoles {
			next = g.requireRole(p, next)
		}
		return verify(next)
	}
}

func (g *Gate) requireRole(p Policy, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth_gate", "policy", p.String())

		id, ok := IdentityFrom(c)
		if !ok {
			l.Warn("auth_denied", "status", http.StatusUnauthorized, "reason", "no identity")
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		role, err := g.Roles.GetUserRole(ctx, id.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("auth_denied", "status", http.StatusUnauthorized, "reason", "user no longer exists", "user_id", id.UserID)
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		if err != nil {
			l.Error("role_lookup_failed", "status", http.StatusInternalServerError, "user_id", id.UserID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		if !p.Allows(role) {
			l.Warn("auth_denied", "status", http.StatusForbidden, "reason", "role not allowed", "user_id", id.UserID, "role", role)
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}

		id.Role = role
		c.Set(identityKey, id)
		return next(c)
	}
}

// AccessToken reads the access cookie, falling back to a bearer header.
func AccessToken(c echo.Context) string {
	if ck, err := c.Cookie(AccessCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
