// Package usecase implements product listing and seller product management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	productDomain "github.com/allisson/vending/internal/product/domain"
)

// ProductRepository persists products. Every method honors a transaction carried by ctx.
type ProductRepository interface {
	Create(ctx context.Context, product *productDomain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*productDomain.Product, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*productDomain.Product, error)
	Update(ctx context.Context, product *productDomain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns one page of products ordered by creation and the total match count.
	List(ctx context.Context, filter productDomain.ListFilter) ([]*productDomain.Product, int64, error)
}

// ProductUseCase defines the product operations.
type ProductUseCase interface {
	List(ctx context.Context, filter productDomain.ListFilter) (*productDomain.ProductPage, error)
	Get(ctx context.Context, id uuid.UUID) (*productDomain.Product, error)
	Create(
		ctx context.Context,
		sellerID uuid.UUID,
		input *productDomain.CreateProductInput,
	) (*productDomain.Product, error)
	// Update applies a partial update. Only the seller who created the product may update it.
	Update(
		ctx context.Context,
		sellerID, id uuid.UUID,
		input *productDomain.UpdateProductInput,
	) (*productDomain.Product, error)
	// Delete removes a product. Only the seller who created it may delete it.
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
}
