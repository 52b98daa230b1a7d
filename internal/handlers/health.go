package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "OK",
		"service":   "sach-wave-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
