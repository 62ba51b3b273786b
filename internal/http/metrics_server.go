package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/vending/internal/metrics"
)

// MetricsServer is the HTTP server for the Prometheus scrape endpoint. It listens on
// SERVER_HOST:METRICS_PORT, apart from the public API, so /metrics is never reachable
// through the API port.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer creates a MetricsServer that serves GET /metrics from metricsProvider.
// Requests go through the same recovery and request-logging middleware as the API. A nil
// provider yields a server without routes.
func NewMetricsServer(
	host string,
	port int,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	}

	return &MetricsServer{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the router so tests can drive it through httptest without listening.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start listens and serves until Shutdown is called. It returns nil after a graceful
// shutdown and an error when the listener cannot be opened.
func (s *MetricsServer) Start(ctx context.Context) error {
	s.logger.Info("starting metrics server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	return nil
}

// Shutdown stops accepting scrapes and waits for in-flight ones to finish or for ctx to
// expire.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
