package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	m := NewMetrics("estatehub_test")
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/posts/:postId", func(c echo.Context) error {
		if c.Param("postId") == "missing" {
			return models.NewNotFoundError("Post not found")
		}
		return c.NoContent(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/posts/:postId", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/posts/:postId", "404")))
}
