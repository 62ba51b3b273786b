package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vending/internal/metrics"
	storeDomain "github.com/allisson/vending/internal/store/domain"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// storeUseCaseWithMetrics decorates StoreUseCase with metrics instrumentation.
type storeUseCaseWithMetrics struct {
	next    StoreUseCase
	metrics metrics.BusinessMetrics
}

// NewStoreUseCaseWithMetrics wraps a StoreUseCase with metrics recording. Successful
// deposits and purchases also feed the vending counters.
func NewStoreUseCaseWithMetrics(useCase StoreUseCase, m metrics.BusinessMetrics) StoreUseCase {
	return &storeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *storeUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	s.metrics.RecordOperation(ctx, "store", operation, status)
	s.metrics.RecordDuration(ctx, "store", operation, time.Since(start), status)
}

func (s *storeUseCaseWithMetrics) Deposit(
	ctx context.Context,
	coin int64,
	userID uuid.UUID,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := s.next.Deposit(ctx, coin, userID)
	s.record(ctx, "deposit", start, err)
	if err == nil {
		s.metrics.RecordDeposit(ctx, coin)
	}
	return user, err
}

func (s *storeUseCaseWithMetrics) Buy(
	ctx context.Context,
	productID uuid.UUID,
	amount int64,
	userID uuid.UUID,
) (*storeDomain.PurchaseResult, error) {
	start := time.Now()
	result, err := s.next.Buy(ctx, productID, amount, userID)
	s.record(ctx, "buy", start, err)
	if err == nil {
		s.metrics.RecordPurchase(ctx, result.TotalSpent, len(result.CoinChange))
	}
	return result, err
}

func (s *storeUseCaseWithMetrics) ResetDeposit(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := s.next.ResetDeposit(ctx, userID)
	s.record(ctx, "reset", start, err)
	return err
}
