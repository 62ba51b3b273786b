package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storefrontOrigin = "https://shop.vending.example"

func corsRouter(t *testing.T, enabled bool, origins string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	if middleware := createCORSMiddleware(enabled, origins, slog.New(slog.NewTextHandler(io.Discard, nil))); middleware != nil {
		router.Use(middleware)
	}
	router.GET("/v1/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})
	router.PUT("/reset", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "disabled", enabled: false, origins: storefrontOrigin, wantNil: true},
		{name: "enabled without origins", enabled: true, origins: "", wantNil: true},
		{name: "enabled with only separators", enabled: true, origins: " , ,", wantNil: true},
		{name: "enabled with origins", enabled: true, origins: storefrontOrigin + ", https://admin.vending.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Empty(t, parseOrigins(" , "))
	assert.Equal(t,
		[]string{storefrontOrigin, "https://admin.vending.example"},
		parseOrigins(" "+storefrontOrigin+" ,, https://admin.vending.example "),
	)
}

func TestCORS_Requests(t *testing.T) {
	t.Run("Success_AllowedOriginGetsHeaders", func(t *testing.T) {
		router := corsRouter(t, true, storefrontOrigin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		req.Header.Set("Origin", storefrontOrigin)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, storefrontOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Success_PreflightForReset", func(t *testing.T) {
		router := corsRouter(t, true, storefrontOrigin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/reset", nil)
		req.Header.Set("Origin", storefrontOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, storefrontOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	})

	t.Run("Success_DisabledAddsNoHeaders", func(t *testing.T) {
		router := corsRouter(t, false, storefrontOrigin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		req.Header.Set("Origin", storefrontOrigin)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Error_UnknownOriginRejected", func(t *testing.T) {
		router := corsRouter(t, true, storefrontOrigin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		req.Header.Set("Origin", "https://evil.example")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
