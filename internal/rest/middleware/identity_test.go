package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anglerhub/pondkeeper/internal/rest/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityServer(extra ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Identity())

	e.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": middleware.CallerID(c)})
	}, extra...)

	return e
}

func TestIdentityHeaderParsed(t *testing.T) {
	e := newIdentityServer()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.IdentityHeader, "42")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":42}`, rec.Body.String())
}

func TestIdentityHeaderAbsent(t *testing.T) {
	e := newIdentityServer()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":0}`, rec.Body.String())
}

func TestIdentityHeaderInvalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "fisherman"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newIdentityServer()

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set(middleware.IdentityHeader, tt.value)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	e := newIdentityServer(middleware.RequireIdentity())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.IdentityHeader, "9")
	rec = httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
