package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vending/internal/metrics"
	productDomain "github.com/allisson/vending/internal/product/domain"
)

// productUseCaseWithMetrics decorates ProductUseCase with metrics instrumentation.
type productUseCaseWithMetrics struct {
	next    ProductUseCase
	metrics metrics.BusinessMetrics
}

// NewProductUseCaseWithMetrics wraps a ProductUseCase with metrics recording.
func NewProductUseCaseWithMetrics(useCase ProductUseCase, m metrics.BusinessMetrics) ProductUseCase {
	return &productUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *productUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	p.metrics.RecordOperation(ctx, "product", operation, status)
	p.metrics.RecordDuration(ctx, "product", operation, time.Since(start), status)
}

func (p *productUseCaseWithMetrics) List(
	ctx context.Context,
	filter productDomain.ListFilter,
) (*productDomain.ProductPage, error) {
	start := time.Now()
	page, err := p.next.List(ctx, filter)
	p.record(ctx, "list", start, err)
	return page, err
}

func (p *productUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	start := time.Now()
	product, err := p.next.Get(ctx, id)
	p.record(ctx, "get", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Create(
	ctx context.Context,
	sellerID uuid.UUID,
	input *productDomain.CreateProductInput,
) (*productDomain.Product, error) {
	start := time.Now()
	product, err := p.next.Create(ctx, sellerID, input)
	p.record(ctx, "create", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Update(
	ctx context.Context,
	sellerID, id uuid.UUID,
	input *productDomain.UpdateProductInput,
) (*productDomain.Product, error) {
	start := time.Now()
	product, err := p.next.Update(ctx, sellerID, id, input)
	p.record(ctx, "update", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, sellerID, id)
	p.record(ctx, "delete", start, err)
	return err
}
