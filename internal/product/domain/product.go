// Package domain defines the product entity sold by the machine.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CostStep is the granularity of product prices: every cost is a multiple of it.
const CostStep = 5

// Upper bounds for listed products. cost*amount for any purchase stays far below math.MaxInt64.
const (
	MaxCost            = 1_000_000
	MaxAmountAvailable = 1_000_000
)

// Product is an item listed by a seller. AmountAvailable never goes negative.
type Product struct {
	ID              uuid.UUID
	Name            string
	Cost            int64
	AmountAvailable int64
	SellerID        uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOwnedBy reports whether the product was created by sellerID.
func (p *Product) IsOwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}

// CreateProductInput is the data needed to list a new product.
type CreateProductInput struct {
	Name            string
	Cost            int64
	AmountAvailable int64
}

// UpdateProductInput is a partial product update. Nil fields are left unchanged.
type UpdateProductInput struct {
	Name            *string
	Cost            *int64
	AmountAvailable *int64
}

// ListFilter selects a page of products. SearchQuery matches names case-insensitively.
type ListFilter struct {
	Page        int
	PageSize    int
	SearchQuery string
}

// Offset returns the number of rows skipped before the page.
func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items      []*Product
	TotalCount int64
	Page       int
	PageSize   int
}
