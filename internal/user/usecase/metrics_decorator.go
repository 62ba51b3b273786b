package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vending/internal/metrics"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

// Register records metrics for account registration.
func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input *userDomain.RegisterUserInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "register", start, err)
	return user, err
}

// Get records metrics for account retrieval.
func (u *userUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, id)
	u.record(ctx, "get", start, err)
	return user, err
}

// Update records metrics for account updates.
func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input *userDomain.UpdateUserInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, id, input)
	u.record(ctx, "update", start, err)
	return user, err
}

// Delete records metrics for account deletion.
func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	u.record(ctx, "delete", start, err)
	return err
}
