package dto

import (
	"time"

	productDomain "github.com/allisson/vending/internal/product/domain"
)

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Cost            int64     `json:"cost"`
	AmountAvailable int64     `json:"amount_available"`
	SellerID        string    `json:"seller_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ListProductsResponse is one page of products.
type ListProductsResponse struct {
	Items      []ProductResponse `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// MapProductToResponse converts a domain product to an API response.
func MapProductToResponse(product *productDomain.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID.String(),
		Name:            product.Name,
		Cost:            product.Cost,
		AmountAvailable: product.AmountAvailable,
		SellerID:        product.SellerID.String(),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

// MapProductPageToResponse converts a page of domain products to an API response.
func MapProductPageToResponse(page *productDomain.ProductPage) ListProductsResponse {
	items := make([]ProductResponse, 0, len(page.Items))
	for _, product := range page.Items {
		items = append(items, MapProductToResponse(product))
	}
	return ListProductsResponse{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}
