package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/desk-reservation/internal/utils"
)

const testSecret = "test-secret"

func runProtected(t *testing.T, authHeader string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	require.NoError(t, h(c))
	return rec
}

func TestJWTAuth(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, "EMPLOYEE", 5)
	require.NoError(t, err)

	t.Run("valid token passes and sets claims", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+access.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var gotUser interface{}
		var gotRole interface{}
		h := JWTAuth(testSecret)(func(c echo.Context) error {
			gotUser = c.Get("user_id")
			gotRole = c.Get("role")
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 42, gotUser)
		assert.Equal(t, "EMPLOYEE", gotRole)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := runProtected(t, "", JWTAuth(testSecret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		rec := runProtected(t, "Bearer "+access.Token, JWTAuth("other-secret"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		rec := runProtected(t, "Bearer not.a.jwt", JWTAuth(testSecret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	employee, err := utils.NewAccessToken(testSecret, 1, "EMPLOYEE", 5)
	require.NoError(t, err)
	admin, err := utils.NewAccessToken(testSecret, 2, "ADMIN", 5)
	require.NoError(t, err)

	cases := []struct {
		name    string
		token   string
		allowed []string
		want    int
	}{
		{"employee on employee route", employee.Token, []string{"EMPLOYEE", "ADMIN"}, http.StatusOK},
		{"admin on admin route", admin.Token, []string{"ADMIN"}, http.StatusOK},
		{"employee blocked from admin route", employee.Token, []string{"ADMIN"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runProtected(t, "Bearer "+tc.token,
				JWTAuth(testSecret), RequireRole(tc.allowed...))
			assert.Equal(t, tc.want, rec.Code)
		})
	}

	t.Run("no role claim in context", func(t *testing.T) {
		rec := runProtected(t, "", RequireRole("ADMIN"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
