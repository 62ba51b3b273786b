// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/vending/internal/auth/http"
	authUseCase "github.com/allisson/vending/internal/auth/usecase"
	"github.com/allisson/vending/internal/config"
	"github.com/allisson/vending/internal/metrics"
	productHTTP "github.com/allisson/vending/internal/product/http"
	storeHTTP "github.com/allisson/vending/internal/store/http"
	userDomain "github.com/allisson/vending/internal/user/domain"
	userHTTP "github.com/allisson/vending/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Server is the API server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new Server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers the middleware chain and every route. metricsProvider may be nil
// when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	authHandler *authHTTP.AuthHandler,
	userHandler *userHTTP.UserHandler,
	productHandler *productHTTP.ProductHandler,
	storeHandler *storeHTTP.StoreHandler,
	tokenUseCase authUseCase.TokenUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticated := []gin.HandlerFunc{authHTTP.AuthenticationMiddleware(tokenUseCase, s.logger)}
	if cfg.RateLimitEnabled {
		authenticated = append(
			authenticated,
			authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger),
		)
	}

	var authLimited []gin.HandlerFunc
	if cfg.RateLimitAuthEnabled {
		authLimited = append(
			authLimited,
			authHTTP.AuthRateLimitMiddleware(cfg.RateLimitAuthRequestsPerSec, cfg.RateLimitAuthBurst, s.logger),
		)
	}

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	{
		limited := auth.Group("", authLimited...)
		limited.POST("/login", authHandler.LoginHandler)
		limited.POST("/refresh-token", authHandler.RefreshTokenHandler)

		auth.POST("/logout", authHandler.LogoutHandler)
		auth.Group("", authenticated...).POST("/logout/all", authHandler.LogoutAllHandler)
	}

	v1.POST("/users", userHandler.RegisterHandler)
	users := v1.Group("/users", authenticated...)
	{
		users.GET("", userHandler.GetHandler)
		users.PUT("", userHandler.UpdateHandler)
		users.DELETE("", userHandler.DeleteHandler)
	}

	v1.GET("/products", productHandler.ListHandler)
	v1.GET("/products/:id", productHandler.GetHandler)
	products := v1.Group("/products", authenticated...)
	products.Use(authHTTP.RequireRole(userDomain.RoleSeller, s.logger))
	{
		products.POST("", productHandler.CreateHandler)
		products.PUT("/:id", productHandler.UpdateHandler)
		products.DELETE("/:id", productHandler.DeleteHandler)
	}

	store := v1.Group("", authenticated...)
	store.Use(authHTTP.RequireRole(userDomain.RoleBuyer, s.logger))
	{
		store.POST("/deposit", storeHandler.DepositHandler)
		store.POST("/buy", storeHandler.BuyHandler)
		store.PUT("/reset", storeHandler.ResetHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		s.notReady(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		s.notReady(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func (s *Server) notReady(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":     "not_ready",
		"components": gin.H{"database": "error"},
	})
}
