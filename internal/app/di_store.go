package app

import (
	"fmt"

	storeDomain "github.com/allisson/vending/internal/store/domain"
	storeHTTP "github.com/allisson/vending/internal/store/http"
	storeService "github.com/allisson/vending/internal/store/service"
	storeUseCase "github.com/allisson/vending/internal/store/usecase"
)

// ChangeMaker returns the change algorithm for STORE_COIN_DENOMINATIONS. Canonical coin
// systems get the greedy algorithm, every other system the optimal one.
func (c *Container) ChangeMaker() storeDomain.ChangeMaker {
	c.changeMakerInit.Do(func() {
		c.changeMaker = storeDomain.NewChangeMaker(c.config.StoreCoinDenominations)
	})
	return c.changeMaker
}

// StoreUseCase returns the deposit and purchase use case, instrumented with business
// metrics.
func (c *Container) StoreUseCase() (storeUseCase.StoreUseCase, error) {
	return lazy(c, &c.storeUseCaseInit, "storeUseCase", &c.storeUseCase, func() (storeUseCase.StoreUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for store use case: %w", err)
		}

		accountRepo, err := c.UserRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get user repository for store use case: %w", err)
		}

		productRepo, err := c.ProductRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get product repository for store use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for store use case: %w", err)
		}

		useCase := storeUseCase.NewStoreUseCase(
			txManager,
			accountRepo,
			productRepo,
			c.ChangeMaker(),
			storeService.NewKeyedLocker(),
			c.Clock(),
		)
		return storeUseCase.NewStoreUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// StoreHandler returns the HTTP handler for deposit, buy and reset.
func (c *Container) StoreHandler() (*storeHTTP.StoreHandler, error) {
	return lazy(c, &c.storeHandlerInit, "storeHandler", &c.storeHandler, func() (*storeHTTP.StoreHandler, error) {
		useCase, err := c.StoreUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get store use case for store handler: %w", err)
		}
		return storeHTTP.NewStoreHandler(useCase, c.ChangeMaker().Denominations(), c.Logger()), nil
	})
}
