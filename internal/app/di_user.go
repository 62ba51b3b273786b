package app

import (
	"fmt"

	authUseCase "github.com/allisson/vending/internal/auth/usecase"
	"github.com/allisson/vending/internal/database"
	storeUseCase "github.com/allisson/vending/internal/store/usecase"
	userHTTP "github.com/allisson/vending/internal/user/http"
	userRepository "github.com/allisson/vending/internal/user/repository"
	userUseCase "github.com/allisson/vending/internal/user/usecase"
)

// UserRepository is the account repository as seen by every use case that touches accounts.
type UserRepository interface {
	userUseCase.UserRepository
	authUseCase.UserRepository
	storeUseCase.AccountRepository
}

// UserRepository returns the account repository for the configured driver.
func (c *Container) UserRepository() (UserRepository, error) {
	return lazy(c, &c.userRepositoryInit, "userRepository", &c.userRepository, func() (UserRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for user repository: %w", err)
		}

		switch {
		case database.IsPostgres(c.config.DBDriver):
			return userRepository.NewPostgreSQLUserRepository(db), nil
		case c.config.DBDriver == database.DriverMySQL:
			return userRepository.NewMySQLUserRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// UserUseCase returns the account use case, instrumented with business metrics.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	return lazy(c, &c.userUseCaseInit, "userUseCase", &c.userUseCase, c.initUserUseCase)
}

// UserHandler returns the HTTP handler for the account endpoints.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	return lazy(c, &c.userHandlerInit, "userHandler", &c.userHandler, func() (*userHTTP.UserHandler, error) {
		useCase, err := c.UserUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
		}

		sessions, err := c.AuthUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get auth use case for user handler: %w", err)
		}

		return userHTTP.NewUserHandler(useCase, sessions, c.Logger()), nil
	})
}

func (c *Container) initUserUseCase() (userUseCase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for user use case: %w", err)
	}

	// Deleting an account revokes its access tokens.
	revocations, err := c.RevocationCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation cache for user use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
	}

	useCase := userUseCase.NewUserUseCase(txManager, userRepo, hasher, revocations)
	return userUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
}
