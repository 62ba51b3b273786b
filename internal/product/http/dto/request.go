// Package dto provides data transfer objects for the product endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	productDomain "github.com/allisson/vending/internal/product/domain"
	customValidation "github.com/allisson/vending/internal/validation"
)

// CreateProductRequest contains the parameters for listing a product.
type CreateProductRequest struct {
	Name            string `json:"name"`
	Cost            int64  `json:"cost"`
	AmountAvailable int64  `json:"amount_available"`
}

// Validate checks the request shape. Price and stock rules are enforced by the use case.
func (r *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Cost, validation.Required),
		validation.Field(&r.AmountAvailable, validation.Required),
	)
}

// ToDomain converts the request into a use case input.
func (r *CreateProductRequest) ToDomain() *productDomain.CreateProductInput {
	return &productDomain.CreateProductInput{
		Name:            r.Name,
		Cost:            r.Cost,
		AmountAvailable: r.AmountAvailable,
	}
}

// UpdateProductRequest is a partial product update. Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name            *string `json:"name"`
	Cost            *int64  `json:"cost"`
	AmountAvailable *int64  `json:"amount_available"`
}

// Validate requires at least one field.
func (r *UpdateProductRequest) Validate() error {
	if r.Name == nil && r.Cost == nil && r.AmountAvailable == nil {
		return validation.NewError(
			"validation_empty_update",
			"at least one of name, cost or amount_available is required",
		)
	}
	return nil
}

// ToDomain converts the request into a use case input.
func (r *UpdateProductRequest) ToDomain() *productDomain.UpdateProductInput {
	return &productDomain.UpdateProductInput{
		Name:            r.Name,
		Cost:            r.Cost,
		AmountAvailable: r.AmountAvailable,
	}
}
