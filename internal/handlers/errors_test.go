package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", models.NewValidationError("Invalid credentials"), http.StatusBadRequest, `{"message":"Invalid credentials"}`},
		{"conflict", models.NewConflictError("User already exists"), http.StatusBadRequest, `{"message":"User already exists"}`},
		{"not found", models.NewNotFoundError("Post"), http.StatusNotFound, `{"message":"Post not found"}`},
		{"forbidden", models.NewAuthorizationError("Not authorized"), http.StatusForbidden, `{"message":"Not authorized"}`},
		{"internal hides cause", models.NewInternalError(errors.New("disk on fire")), http.StatusInternalServerError, `{"message":"Something went wrong!"}`},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "No token provided"), http.StatusUnauthorized, `{"message":"No token provided"}`},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, `{"message":"Not Found"}`},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, `{"message":"Something went wrong!"}`},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			HTTPErrorHandler(tc.err, c)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	assert.NoError(t, c.String(http.StatusOK, "done"))

	HTTPErrorHandler(errors.New("late"), c)

	assert.Equal(t, "done", rec.Body.String())
}
