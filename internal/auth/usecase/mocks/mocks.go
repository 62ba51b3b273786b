// Package mocks provides mock implementations of the auth use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// MockRefreshTokenRepository is a mock implementation of RefreshTokenRepository for testing.
type MockRefreshTokenRepository struct {
	mock.Mock
}

// Create mocks the Create method of RefreshTokenRepository.
func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// GetByTokenHash mocks the GetByTokenHash method of RefreshTokenRepository.
func (m *MockRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.RefreshToken), args.Error(1)
}

// Delete mocks the Delete method of RefreshTokenRepository.
func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteByUserID mocks the DeleteByUserID method of RefreshTokenRepository.
func (m *MockRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// CountActiveByUserIDExcludingAddress mocks the CountActiveByUserIDExcludingAddress method
// of RefreshTokenRepository.
func (m *MockRefreshTokenRepository) CountActiveByUserIDExcludingAddress(
	ctx context.Context,
	userID uuid.UUID,
	clientAddress string,
	now time.Time,
) (int64, error) {
	args := m.Called(ctx, userID, clientAddress, now)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteExpired mocks the DeleteExpired method of RefreshTokenRepository.
func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// CountExpired mocks the CountExpired method of RefreshTokenRepository.
func (m *MockRefreshTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenUseCase is a mock implementation of TokenUseCase for testing.
type MockTokenUseCase struct {
	mock.Mock
}

// GenerateAccessToken mocks the GenerateAccessToken method of TokenUseCase.
func (m *MockTokenUseCase) GenerateAccessToken(user *userDomain.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// AddRefreshToken mocks the AddRefreshToken method of TokenUseCase.
func (m *MockTokenUseCase) AddRefreshToken(
	ctx context.Context,
	userID uuid.UUID,
	clientAddress string,
) (*authDomain.IssuedRefreshToken, error) {
	args := m.Called(ctx, userID, clientAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedRefreshToken), args.Error(1)
}

// RemoveRefreshToken mocks the RemoveRefreshToken method of TokenUseCase.
func (m *MockTokenUseCase) RemoveRefreshToken(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetUserSessionCount mocks the GetUserSessionCount method of TokenUseCase.
func (m *MockTokenUseCase) GetUserSessionCount(
	ctx context.Context,
	userID uuid.UUID,
	excludeClientAddress string,
) (int64, error) {
	args := m.Called(ctx, userID, excludeClientAddress)
	return args.Get(0).(int64), args.Error(1)
}

// VerifyRefreshToken mocks the VerifyRefreshToken method of TokenUseCase.
func (m *MockTokenUseCase) VerifyRefreshToken(
	ctx context.Context,
	plainToken string,
) (*authDomain.RefreshToken, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.RefreshToken), args.Error(1)
}

// ClearRefreshToken mocks the ClearRefreshToken method of TokenUseCase.
func (m *MockTokenUseCase) ClearRefreshToken(ctx context.Context, plainToken string) error {
	args := m.Called(ctx, plainToken)
	return args.Error(0)
}

// ClearUserRefreshTokens mocks the ClearUserRefreshTokens method of TokenUseCase.
func (m *MockTokenUseCase) ClearUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Validate mocks the Validate method of TokenUseCase.
func (m *MockTokenUseCase) Validate(
	ctx context.Context,
	claims *authDomain.AccessClaims,
) (*authDomain.Principal, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

// Authenticate mocks the Authenticate method of TokenUseCase.
func (m *MockTokenUseCase) Authenticate(ctx context.Context, accessToken string) (*authDomain.Principal, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

// PurgeExpiredRefreshTokens mocks the PurgeExpiredRefreshTokens method of TokenUseCase.
func (m *MockTokenUseCase) PurgeExpiredRefreshTokens(
	ctx context.Context,
	olderThanDays int,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, olderThanDays, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuthUseCase is a mock implementation of AuthUseCase for testing.
type MockAuthUseCase struct {
	mock.Mock
}

// Login mocks the Login method of AuthUseCase.
func (m *MockAuthUseCase) Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// ExchangeRefreshToken mocks the ExchangeRefreshToken method of AuthUseCase.
func (m *MockAuthUseCase) ExchangeRefreshToken(
	ctx context.Context,
	plainToken, clientAddress string,
) (*authDomain.Session, error) {
	args := m.Called(ctx, plainToken, clientAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// Logout mocks the Logout method of AuthUseCase.
func (m *MockAuthUseCase) Logout(ctx context.Context, plainToken string) error {
	args := m.Called(ctx, plainToken)
	return args.Error(0)
}

// LogoutAllSessions mocks the LogoutAllSessions method of AuthUseCase.
func (m *MockAuthUseCase) LogoutAllSessions(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
