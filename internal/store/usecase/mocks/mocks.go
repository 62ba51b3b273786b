// Package mocks provides mock implementations of the store use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	productDomain "github.com/allisson/vending/internal/product/domain"
	storeDomain "github.com/allisson/vending/internal/store/domain"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing.
type MockAccountRepository struct {
	mock.Mock
}

// GetByIDForUpdate mocks the GetByIDForUpdate method of AccountRepository.
func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// UpdateDeposit mocks the UpdateDeposit method of AccountRepository.
func (m *MockAccountRepository) UpdateDeposit(
	ctx context.Context,
	id uuid.UUID,
	deposit int64,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, id, deposit, updatedAt)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository for testing.
type MockProductRepository struct {
	mock.Mock
}

// GetByIDForUpdate mocks the GetByIDForUpdate method of ProductRepository.
func (m *MockProductRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*productDomain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productDomain.Product), args.Error(1)
}

// Update mocks the Update method of ProductRepository.
func (m *MockProductRepository) Update(ctx context.Context, product *productDomain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockStoreUseCase is a mock implementation of StoreUseCase for testing.
type MockStoreUseCase struct {
	mock.Mock
}

// Deposit mocks the Deposit method of StoreUseCase.
func (m *MockStoreUseCase) Deposit(ctx context.Context, coin int64, userID uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, coin, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Buy mocks the Buy method of StoreUseCase.
func (m *MockStoreUseCase) Buy(
	ctx context.Context,
	productID uuid.UUID,
	amount int64,
	userID uuid.UUID,
) (*storeDomain.PurchaseResult, error) {
	args := m.Called(ctx, productID, amount, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeDomain.PurchaseResult), args.Error(1)
}

// ResetDeposit mocks the ResetDeposit method of StoreUseCase.
func (m *MockStoreUseCase) ResetDeposit(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
