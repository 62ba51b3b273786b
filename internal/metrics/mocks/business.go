// Package mocks provides a mock BusinessMetrics for decorator tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics.
type MockBusinessMetrics struct {
	mock.Mock
}

// RecordOperation mocks the RecordOperation method of BusinessMetrics.
func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

// RecordDuration mocks the RecordDuration method of BusinessMetrics.
func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// RecordDeposit mocks the RecordDeposit method of BusinessMetrics.
func (m *MockBusinessMetrics) RecordDeposit(ctx context.Context, coin int64) {
	m.Called(ctx, coin)
}

// RecordPurchase mocks the RecordPurchase method of BusinessMetrics.
func (m *MockBusinessMetrics) RecordPurchase(ctx context.Context, spent int64, changeCoins int) {
	m.Called(ctx, spent, changeCoins)
}

// ExpectOperation registers the RecordOperation and RecordDuration calls a decorator makes
// for one operation.
func (m *MockBusinessMetrics) ExpectOperation(ctx context.Context, domain, operation, status string) {
	m.On("RecordOperation", ctx, domain, operation, status).Return().Once()
	m.On("RecordDuration", ctx, domain, operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}
