// Package app provides the dependency injection container that assembles the application.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHTTP "github.com/allisson/vending/internal/auth/http"
	authService "github.com/allisson/vending/internal/auth/service"
	authUseCase "github.com/allisson/vending/internal/auth/usecase"
	"github.com/allisson/vending/internal/config"
	"github.com/allisson/vending/internal/database"
	"github.com/allisson/vending/internal/http"
	"github.com/allisson/vending/internal/metrics"
	productHTTP "github.com/allisson/vending/internal/product/http"
	productUseCase "github.com/allisson/vending/internal/product/usecase"
	storeDomain "github.com/allisson/vending/internal/store/domain"
	storeHTTP "github.com/allisson/vending/internal/store/http"
	storeUseCase "github.com/allisson/vending/internal/store/usecase"
	userHTTP "github.com/allisson/vending/internal/user/http"
	userUseCase "github.com/allisson/vending/internal/user/usecase"
)

// Container holds all application dependencies. Components are created on first access
// and cached, so commands only pay for what they use.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Auth
	clock            authService.Clock
	passwordHasher   authService.PasswordHasher
	accessTokenCodec authService.AccessTokenCodec
	revocationCache  authService.RevocationCache
	refreshTokenRepo authUseCase.RefreshTokenRepository
	tokenUseCase     authUseCase.TokenUseCase
	authUseCase      authUseCase.AuthUseCase
	revocationPruner *authUseCase.RevocationPruner
	authHandler      *authHTTP.AuthHandler

	// Accounts
	userRepository UserRepository
	userUseCase    userUseCase.UserUseCase
	userHandler    *userHTTP.UserHandler

	// Products
	productRepository ProductRepository
	productUseCase    productUseCase.ProductUseCase
	productHandler    *productHTTP.ProductHandler

	// Store
	changeMaker  storeDomain.ChangeMaker
	storeUseCase storeUseCase.StoreUseCase
	storeHandler *storeHTTP.StoreHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                   sync.Mutex
	loggerInit           sync.Once
	dbInit               sync.Once
	txManagerInit        sync.Once
	metricsProviderInit  sync.Once
	businessMetricsInit  sync.Once
	clockInit            sync.Once
	passwordHasherInit   sync.Once
	accessTokenCodecInit sync.Once
	revocationCacheInit  sync.Once
	refreshTokenRepoInit sync.Once
	tokenUseCaseInit     sync.Once
	authUseCaseInit      sync.Once
	revocationPrunerInit sync.Once
	authHandlerInit      sync.Once
	userRepositoryInit   sync.Once
	userUseCaseInit      sync.Once
	userHandlerInit      sync.Once
	productRepoInit      sync.Once
	productUseCaseInit   sync.Once
	productHandlerInit   sync.Once
	changeMakerInit      sync.Once
	storeUseCaseInit     sync.Once
	storeHandlerInit     sync.Once
	httpServerInit       sync.Once
	metricsServerInit    sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// lazy runs init once for key and caches its result, including a failure.
func lazy[T any](c *Container, once *sync.Once, key string, target *T, init func() (T, error)) (T, error) {
	once.Do(func() {
		value, err := init()
		if err != nil {
			c.mu.Lock()
			c.initErrors[key] = err
			c.mu.Unlock()
			return
		}
		*target = value
	})

	c.mu.Lock()
	err, failed := c.initErrors[key]
	c.mu.Unlock()
	if failed {
		var zero T
		return zero, err
	}
	return *target, nil
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the structured logger, configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection pool.
func (c *Container) DB() (*sql.DB, error) {
	return lazy(c, &c.dbInit, "db", &c.db, c.initDB)
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return lazy(c, &c.txManagerInit, "txManager", &c.txManager, func() (database.TxManager, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		return database.NewTxManager(db), nil
	})
}

// MetricsProvider returns the Prometheus provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return lazy(c, &c.metricsProviderInit, "metricsProvider", &c.metricsProvider, func() (*metrics.Provider, error) {
		if !c.config.MetricsEnabled {
			return nil, nil
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics provider: %w", err)
		}
		return provider, nil
	})
}

// BusinessMetrics returns the use case metrics recorder. It is a no-op when metrics are
// disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return lazy(c, &c.businessMetricsInit, "businessMetrics", &c.businessMetrics, func() (metrics.BusinessMetrics, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return metrics.NewNoOpBusinessMetrics(), nil
		}
		return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	})
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	return lazy(c, &c.httpServerInit, "httpServer", &c.httpServer, c.initHTTPServer)
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return lazy(c, &c.metricsServerInit, "metricsServer", &c.metricsServer, func() (*http.MetricsServer, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return nil, nil
		}
		return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
	})
}

// Shutdown releases every initialized resource. It is safe to call when nothing was
// initialized.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	authHandler, err := c.AuthHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth handler for http server: %w", err)
	}

	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}

	productHandler, err := c.ProductHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get product handler for http server: %w", err)
	}

	storeHandler, err := c.StoreHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get store handler for http server: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(
		c.config,
		authHandler,
		userHandler,
		productHandler,
		storeHandler,
		tokenUseCase,
		metricsProvider,
	)
	return server, nil
}
