package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records business operation metrics for the vending domains.
type BusinessMetrics interface {
	// RecordOperation records a business operation with its status.
	// Domain examples: "auth", "user", "product", "store".
	// Operation examples: "login", "buy", "deposit".
	// Status is "success" or "error".
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of a business operation in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordDeposit records one coin inserted into the machine.
	RecordDeposit(ctx context.Context, coin int64)

	// RecordPurchase records a completed purchase: the amount spent and how many
	// coins were returned as change.
	RecordPurchase(ctx context.Context, spent int64, changeCoins int)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	depositCounter   metric.Int64Counter
	revenueCounter   metric.Int64Counter
	changeCoinsHisto metric.Int64Histogram
}

// NewBusinessMetrics creates a BusinessMetrics backed by the given meter provider.
// Metric names are prefixed with namespace (e.g., "vending_operations_total").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	depositCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_coins_deposited_total", namespace),
		metric.WithDescription("Total number of coins deposited, by denomination"),
		metric.WithUnit("{coin}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deposit counter: %w", err)
	}

	revenueCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_purchase_revenue_total", namespace),
		metric.WithDescription("Total amount spent on purchases in the smallest currency unit"),
		metric.WithUnit("{cent}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create revenue counter: %w", err)
	}

	changeCoinsHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_purchase_change_coins", namespace),
		metric.WithDescription("Number of coins returned as change per purchase"),
		metric.WithUnit("{coin}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create change coins histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		depositCounter:   depositCounter,
		revenueCounter:   revenueCounter,
		changeCoinsHisto: changeCoinsHisto,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDeposit(ctx context.Context, coin int64) {
	b.depositCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("denomination", strconv.FormatInt(coin, 10))),
	)
}

func (b *businessMetrics) RecordPurchase(ctx context.Context, spent int64, changeCoins int) {
	b.revenueCounter.Add(ctx, spent)
	b.changeCoinsHisto.Record(ctx, int64(changeCoins))
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordDeposit(ctx context.Context, coin int64) {}

func (n *NoOpBusinessMetrics) RecordPurchase(ctx context.Context, spent int64, changeCoins int) {}

// Status returns "success" when err is nil and "error" otherwise.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
