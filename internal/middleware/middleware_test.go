package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authStub map[string]*models.User

func (s authStub) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, models.NewAuthenticationError("Invalid token")
}

func run(t *testing.T, mw []echo.MiddlewareFunc, header string) (*models.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *models.User
	h := func(c echo.Context) error {
		seen = CurrentUser(c)
		return nil
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	err := h(c)
	return seen, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	var ae *models.AppError
	require.True(t, errors.As(err, &ae), "unexpected error %v", err)
	return ae.StatusCode()
}

func TestJWTAuthMiddleware(t *testing.T) {
	alice := &models.User{ID: "u1", Role: models.RoleUser}
	auth := JWTAuthMiddleware(authStub{"good": alice})

	_, err := run(t, []echo.MiddlewareFunc{auth}, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, []echo.MiddlewareFunc{auth}, "Token good")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, []echo.MiddlewareFunc{auth}, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	seen, err := run(t, []echo.MiddlewareFunc{auth}, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, alice, seen)
}

func TestRoleMiddleware(t *testing.T) {
	users := authStub{
		"user":  {ID: "u", Role: models.RoleUser},
		"admin": {ID: "a", Role: models.RoleAdmin},
		"owner": {ID: "o", Role: models.RoleOwner},
	}
	auth := JWTAuthMiddleware(users)

	cases := []struct {
		token      string
		mw         echo.MiddlewareFunc
		wantStatus int
	}{
		{"user", RequireAdmin(), http.StatusForbidden},
		{"admin", RequireAdmin(), 0},
		{"owner", RequireAdmin(), 0},
		{"admin", RequireOwner(), http.StatusForbidden},
		{"owner", RequireOwner(), 0},
	}
	for _, tc := range cases {
		_, err := run(t, []echo.MiddlewareFunc{auth, tc.mw}, "Bearer "+tc.token)
		if tc.wantStatus == 0 {
			assert.NoError(t, err, tc.token)
			continue
		}
		assert.Equal(t, tc.wantStatus, statusOf(t, err), tc.token)
	}

	_, err := run(t, []echo.MiddlewareFunc{RequireAdmin()}, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}
