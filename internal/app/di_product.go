package app

import (
	"fmt"

	"github.com/allisson/vending/internal/database"
	productHTTP "github.com/allisson/vending/internal/product/http"
	productRepository "github.com/allisson/vending/internal/product/repository"
	productUseCase "github.com/allisson/vending/internal/product/usecase"
	storeUseCase "github.com/allisson/vending/internal/store/usecase"
)

// ProductRepository is the product repository as seen by the catalog and the store.
type ProductRepository interface {
	productUseCase.ProductRepository
	storeUseCase.ProductRepository
}

// ProductRepository returns the product repository for the configured driver.
func (c *Container) ProductRepository() (ProductRepository, error) {
	return lazy(c, &c.productRepoInit, "productRepository", &c.productRepository, func() (ProductRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for product repository: %w", err)
		}

		switch {
		case database.IsPostgres(c.config.DBDriver):
			return productRepository.NewPostgreSQLProductRepository(db), nil
		case c.config.DBDriver == database.DriverMySQL:
			return productRepository.NewMySQLProductRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// ProductUseCase returns the catalog use case, instrumented with business metrics.
func (c *Container) ProductUseCase() (productUseCase.ProductUseCase, error) {
	return lazy(c, &c.productUseCaseInit, "productUseCase", &c.productUseCase, func() (productUseCase.ProductUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for product use case: %w", err)
		}

		productRepo, err := c.ProductRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get product repository for product use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for product use case: %w", err)
		}

		useCase := productUseCase.NewProductUseCase(txManager, productRepo)
		return productUseCase.NewProductUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// ProductHandler returns the HTTP handler for the product endpoints.
func (c *Container) ProductHandler() (*productHTTP.ProductHandler, error) {
	return lazy(c, &c.productHandlerInit, "productHandler", &c.productHandler, func() (*productHTTP.ProductHandler, error) {
		useCase, err := c.ProductUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get product use case for product handler: %w", err)
		}
		return productHTTP.NewProductHandler(useCase, c.Logger()), nil
	})
}
