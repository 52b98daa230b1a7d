package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsRequestsPerRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/ping/:id", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	before := testutil.ToFloat64(RequestsTotal.WithLabelValues(http.MethodGet, "/ping/:id", "200"))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/42", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	after := testutil.ToFloat64(RequestsTotal.WithLabelValues(http.MethodGet, "/ping/:id", "200"))
	assert.Equal(t, 3.0, after-before)
}

func TestEvent(t *testing.T) {
	before := testutil.ToFloat64(DomainEvents.WithLabelValues("test_event"))
	Event("test_event")
	assert.Equal(t, 1.0, testutil.ToFloat64(DomainEvents.WithLabelValues("test_event"))-before)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	Event("exposed")
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sachwave_domain_events_total"))
}
