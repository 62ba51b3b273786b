// Package dto provides data transfer objects for the deposit, buy and reset endpoints.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/vending/internal/validation"
)

// DepositRequest carries one coin.
type DepositRequest struct {
	Value int64 `json:"value"`
}

// Validate checks the coin against the accepted denominations.
func (r *DepositRequest) Validate(denominations []int64) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.Required, customValidation.Coin(denominations)),
	)
}

// BuyRequest selects a product and how many units to buy.
type BuyRequest struct {
	ProductID string `json:"product_id"`
	Amount    int64  `json:"amount"`
}

// Validate checks the request shape.
func (r *BuyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ProductID, validation.Required, validation.By(func(value interface{}) error {
			if _, err := uuid.Parse(r.ProductID); err != nil {
				return validation.NewError("validation_uuid", "must be a valid UUID")
			}
			return nil
		})),
		validation.Field(&r.Amount, validation.Required, validation.Min(int64(1))),
	)
}

// ProductUUID returns the parsed product id. Call it only after Validate succeeded.
func (r *BuyRequest) ProductUUID() uuid.UUID {
	return uuid.MustParse(r.ProductID)
}
