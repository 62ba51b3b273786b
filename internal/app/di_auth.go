package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/vending/internal/auth/http"
	authRepository "github.com/allisson/vending/internal/auth/repository"
	authService "github.com/allisson/vending/internal/auth/service"
	authUseCase "github.com/allisson/vending/internal/auth/usecase"
	"github.com/allisson/vending/internal/config"
	"github.com/allisson/vending/internal/database"
)

// Clock returns the wall clock shared by token issuing and revocation.
func (c *Container) Clock() authService.Clock {
	c.clockInit.Do(func() {
		c.clock = authService.NewSystemClock()
	})
	return c.clock
}

// PasswordHasher returns the bcrypt password hasher.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	return lazy(c, &c.passwordHasherInit, "passwordHasher", &c.passwordHasher, authService.NewPasswordHasher)
}

// AccessTokenCodec returns the JWT codec. The signing key is decrypted through KMS when
// AUTH_JWT_SECRET_KMS_KEY_URI is set.
func (c *Container) AccessTokenCodec() (authService.AccessTokenCodec, error) {
	return lazy(c, &c.accessTokenCodecInit, "accessTokenCodec", &c.accessTokenCodec, func() (authService.AccessTokenCodec, error) {
		key, err := authService.LoadSigningKey(
			context.Background(),
			c.config.AuthJWTSecret,
			c.config.AuthJWTSecretKMSKeyURI,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		if len(key) == 0 {
			return nil, fmt.Errorf("AUTH_JWT_SECRET is required")
		}
		return authService.NewJWTCodec(key, c.config.AuthJWTIssuer, c.config.AuthJWTAudience, c.Clock()), nil
	})
}

// RevocationCache returns the revocation store selected by REVOCATION_STORE.
func (c *Container) RevocationCache() (authService.RevocationCache, error) {
	return lazy(c, &c.revocationCacheInit, "revocationCache", &c.revocationCache, c.initRevocationCache)
}

// RefreshTokenRepository returns the refresh token repository for the configured driver.
func (c *Container) RefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	return lazy(c, &c.refreshTokenRepoInit, "refreshTokenRepository", &c.refreshTokenRepo, func() (authUseCase.RefreshTokenRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for refresh token repository: %w", err)
		}

		switch {
		case database.IsPostgres(c.config.DBDriver):
			return authRepository.NewPostgreSQLRefreshTokenRepository(db), nil
		case c.config.DBDriver == database.DriverMySQL:
			return authRepository.NewMySQLRefreshTokenRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	return lazy(c, &c.tokenUseCaseInit, "tokenUseCase", &c.tokenUseCase, c.initTokenUseCase)
}

// AuthUseCase returns the session use case, instrumented with business metrics.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	return lazy(c, &c.authUseCaseInit, "authUseCase", &c.authUseCase, c.initAuthUseCase)
}

// RevocationPruner returns the background job that drops expired revocation watermarks.
func (c *Container) RevocationPruner() (*authUseCase.RevocationPruner, error) {
	return lazy(c, &c.revocationPrunerInit, "revocationPruner", &c.revocationPruner, func() (*authUseCase.RevocationPruner, error) {
		cache, err := c.RevocationCache()
		if err != nil {
			return nil, fmt.Errorf("failed to get revocation cache for pruner: %w", err)
		}
		return authUseCase.NewRevocationPruner(cache, c.config.RevocationPruneInterval, c.Logger()), nil
	})
}

// AuthHandler returns the HTTP handler for the session endpoints.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	return lazy(c, &c.authHandlerInit, "authHandler", &c.authHandler, func() (*authHTTP.AuthHandler, error) {
		useCase, err := c.AuthUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
		}
		return authHTTP.NewAuthHandler(useCase, c.Logger()), nil
	})
}

func (c *Container) initRevocationCache() (authService.RevocationCache, error) {
	ttl := c.config.AuthAccessTokenExpiration

	switch c.config.RevocationStore {
	case config.RevocationStoreMemory:
		return authService.NewMemoryRevocationCache(c.Clock(), ttl), nil
	case config.RevocationStoreDatabase:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for revocation cache: %w", err)
		}

		var repo authService.RevocationRepository
		switch {
		case database.IsPostgres(c.config.DBDriver):
			repo = authRepository.NewPostgreSQLRevocationRepository(db)
		case c.config.DBDriver == database.DriverMySQL:
			repo = authRepository.NewMySQLRevocationRepository(db)
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return authService.NewDatabaseRevocationCache(repo, c.Clock(), ttl), nil
	default:
		return nil, fmt.Errorf("unsupported revocation store: %s", c.config.RevocationStore)
	}
}

func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	refreshTokenRepo, err := c.RefreshTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token repository for token use case: %w", err)
	}

	codec, err := c.AccessTokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token codec for token use case: %w", err)
	}

	revocations, err := c.RevocationCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation cache for token use case: %w", err)
	}

	return authUseCase.NewTokenUseCase(
		c.config,
		refreshTokenRepo,
		codec,
		authService.NewRefreshTokenGenerator(),
		revocations,
		c.Clock(),
	), nil
}

func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for auth use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for auth use case: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for auth use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	useCase := authUseCase.NewAuthUseCase(txManager, userRepo, hasher, tokenUseCase)
	return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}
