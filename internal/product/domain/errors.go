package domain

import (
	"github.com/allisson/vending/internal/errors"
)

// Product errors.
var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.Coded(errors.ErrNotFound, "product/not-found", "product not found")

	// ErrNotProductOwner indicates a seller tried to change a product listed by another seller.
	ErrNotProductOwner = errors.Coded(
		errors.ErrForbidden,
		"product/not-owner",
		"only the seller who created the product can change it",
	)
)
