package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/middleware"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Something went wrong!"

// HTTPErrorHandler renders every error as {"message": ...}. Internal causes are logged, never sent.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := http.StatusInternalServerError, internalErrorMessage
	var appErr *models.AppError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status, message = appErr.StatusCode(), appErr.Message
		if appErr.Kind == models.KindInternal {
			logError(c, err)
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if status >= http.StatusInternalServerError {
			logError(c, err)
		} else {
			message = fmt.Sprint(httpErr.Message)
		}
	default:
		logError(c, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, map[string]string{"message": message})
	}
	if err != nil {
		slog.Error("write error response", "err", err)
	}
}

func logError(c echo.Context, err error) {
	slog.ErrorContext(c.Request().Context(), "request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"err", err,
	)
}

// bind decodes the body into req and runs the registered validator.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// currentUser returns the authenticated caller. Routes using it sit behind JWTAuthMiddleware.
func currentUser(c echo.Context) (*models.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	return user, nil
}
