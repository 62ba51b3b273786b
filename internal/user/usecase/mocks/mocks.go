// Package mocks provides mock implementations of the user use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	userDomain "github.com/allisson/vending/internal/user/domain"
)

// MockUserRepository is a mock implementation of UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

// Create mocks the Create method of UserRepository.
func (m *MockUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID mocks the GetByID method of UserRepository.
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// GetByIDForUpdate mocks the GetByIDForUpdate method of UserRepository.
func (m *MockUserRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// GetByUsername mocks the GetByUsername method of UserRepository.
func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Update mocks the Update method of UserRepository.
func (m *MockUserRepository) Update(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// UpdateDeposit mocks the UpdateDeposit method of UserRepository.
func (m *MockUserRepository) UpdateDeposit(
	ctx context.Context,
	id uuid.UUID,
	deposit int64,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, id, deposit, updatedAt)
	return args.Error(0)
}

// Delete mocks the Delete method of UserRepository.
func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserUseCase is a mock implementation of UserUseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// Register mocks the Register method of UserUseCase.
func (m *MockUserUseCase) Register(
	ctx context.Context,
	input *userDomain.RegisterUserInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Get mocks the Get method of UserUseCase.
func (m *MockUserUseCase) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Update mocks the Update method of UserUseCase.
func (m *MockUserUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input *userDomain.UpdateUserInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Delete mocks the Delete method of UserUseCase.
func (m *MockUserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
