package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/comic_catalog/internal/models"
	"github.com/Skotchmaster/comic_catalog/internal/tokens"
)

type roleMap map[string]models.Role

func (m roleMap) GetUserRole(_ context.Context, id string) (models.Role, error) {
	if id == "broken" {
		return "", assert.AnError
	}
	r, ok := m[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return r, nil
}

func newGate(t *testing.T) (*Gate, *tokens.Issuer) {
	t.Helper()
	iss, err := tokens.NewIssuer([]byte("gate-access"), []byte("gate-refresh"))
	require.NoError(t, err)
	roles := roleMap{"u-admin": models.RoleAdmin, "u-super": models.RoleSuper, "u-demoted": models.RoleAdmin}
	return &Gate{Tokens: iss, Roles: roles}, iss
}

func accessFor(t *testing.T, iss *tokens.Issuer, id string, role models.Role) string {
	t.Helper()
	tok, err := iss.IssueAccessToken(id, string(role))
	require.NoError(t, err)
	return tok.Value
}

func serve(g *Gate, p Policy, req *http.Request) (*httptest.ResponseRecorder, *Identity) {
	e := echo.New()
	var seen *Identity
	h := g.For(p)(func(c echo.Context) error {
		if id, ok := IdentityFrom(c); ok {
			seen = &id
		}
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestGate_Decisions(t *testing.T) {
	t.Parallel()

	g, iss := newGate(t)
	refresh, err := iss.IssueRefreshToken("u-admin")
	require.NoError(t, err)

	tests := []struct {
		name       string
		policy     Policy
		cookie     string
		bearer     string
		wantStatus int
		wantRole   models.Role
	}{
		{name: "public without token", policy: Public(), wantStatus: http.StatusOK},
		{name: "public ignores bad token", policy: Public(), cookie: "garbage", wantStatus: http.StatusOK},
		{name: "authenticated missing token", policy: Authenticated(), wantStatus: http.StatusUnauthorized},
		{name: "authenticated garbage", policy: Authenticated(), cookie: "garbage", wantStatus: http.StatusUnauthorized},
		{name: "refresh token rejected", policy: Authenticated(), cookie: refresh.Value, wantStatus: http.StatusUnauthorized},
		{name: "authenticated cookie", policy: Authenticated(), cookie: accessFor(t, iss, "u-admin", models.RoleAdmin), wantStatus: http.StatusOK, wantRole: models.RoleAdmin},
		{name: "authenticated bearer", policy: Authenticated(), bearer: accessFor(t, iss, "u-super", models.RoleSuper), wantStatus: http.StatusOK, wantRole: models.RoleSuper},
		{name: "role allowed", policy: Roles(models.RoleSuper, models.RoleAdmin), cookie: accessFor(t, iss, "u-admin", models.RoleAdmin), wantStatus: http.StatusOK, wantRole: models.RoleAdmin},
		{name: "admin on super route", policy: Roles(models.RoleSuper), cookie: accessFor(t, iss, "u-admin", models.RoleAdmin), wantStatus: http.StatusForbidden},
		{name: "stale claim uses stored role", policy: Roles(models.RoleSuper), cookie: accessFor(t, iss, "u-demoted", models.RoleSuper), wantStatus: http.StatusForbidden},
		{name: "deleted user", policy: Roles(models.RoleAdmin), cookie: accessFor(t, iss, "u-gone", models.RoleAdmin), wantStatus: http.StatusUnauthorized},
		{name: "role lookup failure", policy: Roles(models.RoleAdmin), cookie: accessFor(t, iss, "broken", models.RoleAdmin), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessCookie, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.bearer)
			}

			rec, id := serve(g, tt.policy, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantRole != "" {
				require.NotNil(t, id)
				assert.Equal(t, tt.wantRole, id.Role)
			}
		})
	}
}

func TestAccessToken_PrefersCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "from-cookie"})
	req.Header.Set(echo.HeaderAuthorization, "Bearer from-header")
	c := echo.New().NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "from-cookie", AccessToken(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc")
	c = echo.New().NewContext(req, httptest.NewRecorder())
	assert.Empty(t, AccessToken(c))
}

func TestPolicy(t *testing.T) {
	t.Parallel()

	assert.True(t, Public().Allows(""))
	assert.True(t, Authenticated().Allows(models.RoleAdmin))
	assert.False(t, Roles(models.RoleSuper).Allows(models.RoleAdmin))
	assert.Equal(t, "roles:super,admin", Roles(models.RoleSuper, models.RoleAdmin).String())
}
