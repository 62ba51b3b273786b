package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/vending/internal/auth/domain"
)

// MockPasswordHasher is a mock implementation of PasswordHasher for testing.
type MockPasswordHasher struct {
	mock.Mock
}

// Hash mocks the Hash method of PasswordHasher.
func (m *MockPasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method of PasswordHasher.
func (m *MockPasswordHasher) Verify(plain, hashed string) bool {
	args := m.Called(plain, hashed)
	return args.Bool(0)
}

// MockAccessTokenCodec is a mock implementation of AccessTokenCodec for testing.
type MockAccessTokenCodec struct {
	mock.Mock
}

// Sign mocks the Sign method of AccessTokenCodec.
func (m *MockAccessTokenCodec) Sign(claims authDomain.AccessClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

// Parse mocks the Parse method of AccessTokenCodec.
func (m *MockAccessTokenCodec) Parse(token string) (*authDomain.AccessClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AccessClaims), args.Error(1)
}

// MockRefreshTokenGenerator is a mock implementation of RefreshTokenGenerator for testing.
type MockRefreshTokenGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method of RefreshTokenGenerator.
func (m *MockRefreshTokenGenerator) Generate() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

// Hash mocks the Hash method of RefreshTokenGenerator.
func (m *MockRefreshTokenGenerator) Hash(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

// MockRevocationCache is a mock implementation of RevocationCache for testing.
type MockRevocationCache struct {
	mock.Mock
}

// Revoke mocks the Revoke method of RevocationCache.
func (m *MockRevocationCache) Revoke(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// IsRevoked mocks the IsRevoked method of RevocationCache.
func (m *MockRevocationCache) IsRevoked(ctx context.Context, userID uuid.UUID, tokenExpiry time.Time) (bool, error) {
	args := m.Called(ctx, userID, tokenExpiry)
	return args.Bool(0), args.Error(1)
}

// Prune mocks the Prune method of RevocationCache.
func (m *MockRevocationCache) Prune(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockRevocationRepository is a mock implementation of RevocationRepository for testing.
type MockRevocationRepository struct {
	mock.Mock
}

// Upsert mocks the Upsert method of RevocationRepository.
func (m *MockRevocationRepository) Upsert(ctx context.Context, revocation *authDomain.Revocation) error {
	args := m.Called(ctx, revocation)
	return args.Error(0)
}

// Get mocks the Get method of RevocationRepository.
func (m *MockRevocationRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.Revocation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Revocation), args.Error(1)
}

// DeleteBefore mocks the DeleteBefore method of RevocationRepository.
func (m *MockRevocationRepository) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}
