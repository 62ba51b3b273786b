package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	"github.com/allisson/vending/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Login records metrics for logins.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.Login(ctx, input)
	a.record(ctx, "login", start, err)
	return session, err
}

// ExchangeRefreshToken records metrics for refresh token rotation.
func (a *authUseCaseWithMetrics) ExchangeRefreshToken(
	ctx context.Context,
	plainToken, clientAddress string,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.ExchangeRefreshToken(ctx, plainToken, clientAddress)
	a.record(ctx, "refresh", start, err)
	return session, err
}

// Logout records metrics for single session logout.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := a.next.Logout(ctx, plainToken)
	a.record(ctx, "logout", start, err)
	return err
}

// LogoutAllSessions records metrics for logging out every session.
func (a *authUseCaseWithMetrics) LogoutAllSessions(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := a.next.LogoutAllSessions(ctx, userID)
	a.record(ctx, "logout_all", start, err)
	return err
}
