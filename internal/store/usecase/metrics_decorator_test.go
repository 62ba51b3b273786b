package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	metricsMocks "github.com/allisson/vending/internal/metrics/mocks"
	storeDomain "github.com/allisson/vending/internal/store/domain"
	"github.com/allisson/vending/internal/store/usecase"
	storeMocks "github.com/allisson/vending/internal/store/usecase/mocks"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

func TestStoreUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	productID := uuid.Must(uuid.NewV7())

	t.Run("Deposit success records coin", func(t *testing.T) {
		next := &storeMocks.MockStoreUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		user := &userDomain.User{ID: userID, Deposit: 20}

		next.On("Deposit", ctx, int64(20), userID).Return(user, nil).Once()
		m.ExpectOperation(ctx, "store", "deposit", "success")
		m.On("RecordDeposit", ctx, int64(20)).Return().Once()

		got, err := usecase.NewStoreUseCaseWithMetrics(next, m).Deposit(ctx, 20, userID)
		assert.NoError(t, err)
		assert.Equal(t, user, got)
		m.AssertExpectations(t)
	})

	t.Run("Deposit error skips coin counter", func(t *testing.T) {
		next := &storeMocks.MockStoreUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}

		next.On("Deposit", ctx, int64(3), userID).Return(nil, storeDomain.ErrInvalidCoin).Once()
		m.ExpectOperation(ctx, "store", "deposit", "error")

		_, err := usecase.NewStoreUseCaseWithMetrics(next, m).Deposit(ctx, 3, userID)
		assert.ErrorIs(t, err, storeDomain.ErrInvalidCoin)
		m.AssertExpectations(t)
		m.AssertNotCalled(t, "RecordDeposit", ctx, int64(3))
	})

	t.Run("Buy success records purchase", func(t *testing.T) {
		next := &storeMocks.MockStoreUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		result := &storeDomain.PurchaseResult{TotalSpent: 20, Product: "Cola", CoinChange: []int64{50, 20, 10}}

		next.On("Buy", ctx, productID, int64(1), userID).Return(result, nil).Once()
		m.ExpectOperation(ctx, "store", "buy", "success")
		m.On("RecordPurchase", ctx, int64(20), 3).Return().Once()

		got, err := usecase.NewStoreUseCaseWithMetrics(next, m).Buy(ctx, productID, 1, userID)
		assert.NoError(t, err)
		assert.Equal(t, result, got)
		m.AssertExpectations(t)
	})

	t.Run("Reset", func(t *testing.T) {
		next := &storeMocks.MockStoreUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}

		next.On("ResetDeposit", ctx, userID).Return(nil).Once()
		m.ExpectOperation(ctx, "store", "reset", "success")

		assert.NoError(t, usecase.NewStoreUseCaseWithMetrics(next, m).ResetDeposit(ctx, userID))
		m.AssertExpectations(t)
	})
}
