package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success_RecordsRoutePattern", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		}()

		router := gin.New()
		router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
		router.GET("/v1/products/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		for _, id := range []string{"1", "2", "3"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products/"+id, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		output := scrape(t, provider)
		assertBizMetricLine(t, output, `test_app_http_requests_total`,
			`method="GET".*path="/v1/products/:id".*status_code="200"`, `3`)
		assert.NotContains(t, output, `path="/v1/products/1"`)
	})

	t.Run("Success_UnmatchedRouteIsUnknown", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		}()

		router := gin.New()
		router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRoutePattern(t *testing.T) {
	assert.Equal(t, "/v1/products/:id", routePattern("/v1/products/:id"))
	assert.Equal(t, "unknown", routePattern(""))
	assert.Equal(t, "/", routePattern("/"))
}
