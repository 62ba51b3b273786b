package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	"github.com/allisson/vending/internal/auth/usecase"
	authMocks "github.com/allisson/vending/internal/auth/usecase/mocks"
	metricsMocks "github.com/allisson/vending/internal/metrics/mocks"
)

func TestAuthUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Login success", func(t *testing.T) {
		next := &authMocks.MockAuthUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		input := &authDomain.LoginInput{Username: "buyer1", Password: "secret"}
		session := &authDomain.Session{AccessToken: "access"}

		next.On("Login", ctx, input).Return(session, nil).Once()
		m.ExpectOperation(ctx, "auth", "login", "success")

		got, err := usecase.NewAuthUseCaseWithMetrics(next, m).Login(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Login error", func(t *testing.T) {
		next := &authMocks.MockAuthUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		input := &authDomain.LoginInput{Username: "buyer1", Password: "wrong"}

		next.On("Login", ctx, input).Return(nil, authDomain.ErrInvalidCredentials).Once()
		m.ExpectOperation(ctx, "auth", "login", "error")

		_, err := usecase.NewAuthUseCaseWithMetrics(next, m).Login(ctx, input)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("ExchangeRefreshToken error", func(t *testing.T) {
		next := &authMocks.MockAuthUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}

		next.On("ExchangeRefreshToken", ctx, "old", "10.0.0.1").
			Return(nil, authDomain.ErrInvalidRefreshToken).
			Once()
		m.ExpectOperation(ctx, "auth", "refresh", "error")

		_, err := usecase.NewAuthUseCaseWithMetrics(next, m).ExchangeRefreshToken(ctx, "old", "10.0.0.1")
		assert.ErrorIs(t, err, authDomain.ErrInvalidRefreshToken)
		m.AssertExpectations(t)
	})

	t.Run("Logout success", func(t *testing.T) {
		next := &authMocks.MockAuthUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}

		next.On("Logout", ctx, "refresh").Return(nil).Once()
		m.ExpectOperation(ctx, "auth", "logout", "success")

		assert.NoError(t, usecase.NewAuthUseCaseWithMetrics(next, m).Logout(ctx, "refresh"))
		m.AssertExpectations(t)
	})

	t.Run("LogoutAllSessions success", func(t *testing.T) {
		next := &authMocks.MockAuthUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		userID := uuid.Must(uuid.NewV7())

		next.On("LogoutAllSessions", ctx, userID).Return(nil).Once()
		m.ExpectOperation(ctx, "auth", "logout_all", "success")

		assert.NoError(t, usecase.NewAuthUseCaseWithMetrics(next, m).LogoutAllSessions(ctx, userID))
		m.AssertExpectations(t)
	})
}
