// Package mocks provides mock implementations of the product use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	productDomain "github.com/allisson/vending/internal/product/domain"
)

// MockProductRepository is a mock implementation of ProductRepository for testing.
type MockProductRepository struct {
	mock.Mock
}

// Create mocks the Create method of ProductRepository.
func (m *MockProductRepository) Create(ctx context.Context, product *productDomain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// GetByID mocks the GetByID method of ProductRepository.
func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productDomain.Product), args.Error(1)
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

// Delete mocks the Delete method of ProductRepository.
func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// List mocks the List method of ProductRepository.
func (m *MockProductRepository) List(
	ctx context.Context,
	filter productDomain.ListFilter,
) ([]*productDomain.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*productDomain.Product), args.Get(1).(int64), args.Error(2)
}

// MockProductUseCase is a mock implementation of ProductUseCase for testing.
type MockProductUseCase struct {
	mock.Mock
}

// List mocks the List method of ProductUseCase.
func (m *MockProductUseCase) List(
	ctx context.Context,
	filter productDomain.ListFilter,
) (*productDomain.ProductPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productDomain.ProductPage), args.Error(1)
}

// Get mocks the Get method of ProductUseCase.
func (m *MockProductUseCase) Get(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productDomain.Product), args.Error(1)
}

// Create mocks the Create method of ProductUseCase.
func (m *MockProductUseCase) Create(
	ctx context.Context,
	sellerID uuid.UUID,
	input *productDomain.CreateProductInput,
) (*productDomain.Product, error) {
	args := m.Called(ctx, sellerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productDomain.Product), args.Error(1)
}

// Update mocks the Update method of ProductUseCase.
func (m *MockProductUseCase) Update(
	ctx context.Context,
	sellerID, id uuid.UUID,
	input *productDomain.UpdateProductInput,
) (*productDomain.Product, error) {
	args := m.Called(ctx, sellerID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productDomain.Product), args.Error(1)
}

// Delete mocks the Delete method of ProductUseCase.
func (m *MockProductUseCase) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	args := m.Called(ctx, sellerID, id)
	return args.Error(0)
}
