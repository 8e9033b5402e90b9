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

func TestMiddlewareCountsByRouteAndStatus(t *testing.T) {
	m := New("usersvc")
	e := echo.New()
	e.Use(m.Middleware())
	e.POST("/get_users", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"users": []any{}})
	})
	e.POST("/delete_user", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Provide user_id or mob_num.")
	})

	for i := 0; i < 2; i++ {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/get_users", nil))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/delete_user", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodPost, "/get_users", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodPost, "/delete_user", "400")))
}

func TestHandlerExposesGauges(t *testing.T) {
	m := New("usersvc")
	m.ActiveUsers.Set(4)
	m.ActiveManagers.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "usersvc_active_users 4"))
	assert.True(t, strings.Contains(body, "usersvc_active_managers 3"))
}
